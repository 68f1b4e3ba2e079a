package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	return buf.String()
}

func writeProjectFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "project.yaml")
	content := `name: apollo
planned_values: [10, 25, 45, 70, 100]
earned_values: [8, 20, 32, 38]
actual_time: 3
milestone_duration: 5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write project file: %v", err)
	}
	return path
}

// resetFlags restores every changed flag to its default. The commands share
// package-level flag vars, so values set by one Execute call would otherwise
// leak into the next.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().Visit(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(RootCmd)
	var err error
	out := captureStdout(t, func() {
		RootCmd.SetArgs(args)
		err = RootCmd.Execute()
	})
	return out, err
}
