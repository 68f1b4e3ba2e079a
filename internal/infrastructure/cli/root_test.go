package cli

import "testing"

func TestExecuteHelp(t *testing.T) {
	if _, err := runCommand(t, "--help"); err != nil {
		t.Errorf("Execute failed: %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := runCommand(t, "no-such-command"); err == nil {
		t.Error("expected error for unknown command")
	}
}
