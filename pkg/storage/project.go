// Package storage loads caller-supplied project inputs and writes analysis
// reports. Nothing here persists session state between runs; files are the
// transport for input series and exported results only.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/estrack/estrack/pkg/domain/project"
)

// ProjectRepository reads project input files in their supported formats.
type ProjectRepository struct {
	retryConfig retry.Config
}

// NewProjectRepository creates a repository with the default retry policy
// for transient read failures.
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Load reads a project from path, dispatching on the file extension:
// .xlsx goes through the spreadsheet importer, everything else is YAML.
// Series are normalized (negatives clamped to zero) and validated before
// being returned.
func (r *ProjectRepository) Load(path string) (*project.Project, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return r.LoadXLSX(path)
	}
	return r.LoadYAML(path)
}

// LoadYAML reads and validates a YAML project file.
func (r *ProjectRepository) LoadYAML(path string) (*project.Project, error) {
	retryer := retry.New[*project.Project](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*project.Project, error) {
		// #nosec G304 -- Path names the user's own input file
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read project file: %w", err)
		}

		if err := validateProjectDocument(data); err != nil {
			return nil, err
		}

		var p project.Project
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal project: %w", err)
		}

		p.Normalize()
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return &p, nil
	})
}

// validateProjectDocument checks the raw document against the project schema
// before it is bound to the typed struct, so shape errors surface with field
// names instead of unmarshal noise.
func validateProjectDocument(data []byte) error {
	var generic map[string]interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("parse project file: %w", err)
	}
	doc, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("convert project file for validation: %w", err)
	}

	result, err := gojsonschema.Validate(projectSchemaLoader, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validate project file: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid project file: %s", strings.Join(msgs, "; "))
	}
	return nil
}
