package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/estrack/estrack/pkg/domain/schedule"
	"github.com/estrack/estrack/pkg/domain/simulation"
)

// Report is the exported result of a simulation run.
type Report struct {
	SessionID   string                  `json:"session_id" yaml:"session_id"`
	ProjectName string                  `json:"project_name,omitempty" yaml:"project_name,omitempty"`
	Scenario    string                  `json:"scenario" yaml:"scenario"`
	GeneratedAt time.Time               `json:"generated_at" yaml:"generated_at"`
	Initial     *schedule.MetricsRecord `json:"initial_metrics" yaml:"initial_metrics"`
	Steps       []simulation.StepRecord `json:"steps" yaml:"steps"`
	Final       *schedule.MetricsRecord `json:"final_metrics" yaml:"final_metrics"`
}

// NewReport assembles a report from a finished (or partially run) session.
func NewReport(projectName string, initial *schedule.MetricsRecord, session *simulation.Session) *Report {
	return &Report{
		SessionID:   session.ID(),
		ProjectName: projectName,
		Scenario:    string(session.Scenario()),
		GeneratedAt: time.Now(),
		Initial:     initial,
		Steps:       session.Log(),
		Final:       session.Metrics(),
	}
}

// SaveReport writes the report to path, as YAML for .yaml/.yml extensions
// and pretty-printed JSON otherwise.
func SaveReport(path string, report *Report) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(report)
	default:
		data, err = json.MarshalIndent(report, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
