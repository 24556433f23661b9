package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		log       func(string, ...any)
		wantShown bool
	}{
		{"debug hidden", false, Debug, false},
		{"info hidden", false, Info, false},
		{"warn shown", false, Warn, true},
		{"error shown", false, Error, true},
		{"debug verbose", true, Debug, true},
		{"info verbose", true, Info, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(tt.verbose, false, &buf)

			tt.log("level probe", "key", "value")

			shown := strings.Contains(buf.String(), "level probe")
			if shown != tt.wantShown {
				t.Errorf("message shown = %v, want %v (output %q)", shown, tt.wantShown, buf.String())
			}
			if Verbose != tt.verbose {
				t.Errorf("Verbose = %v, want %v", Verbose, tt.verbose)
			}
		})
	}
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Warn("json probe", "path", "/tmp/x.profile")

	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("expected a JSON record, got %q", out)
	}
	if !strings.Contains(out, `"path":"/tmp/x.profile"`) {
		t.Errorf("expected path attribute, got %q", out)
	}
}

func TestWithCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	With("component", "manager").Debug("with probe")

	out := buf.String()
	if !strings.Contains(out, "component=manager") {
		t.Errorf("expected component attribute, got %q", out)
	}
}

func TestSetupNilWriter(t *testing.T) {
	Setup(false, false, nil)
	if Logger == nil {
		t.Fatal("Logger should not be nil after Setup with nil writer")
	}
}

func TestUserOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	t.Cleanup(func() { Stdout, Stderr = oldOut, oldErr })

	UserInfo("loaded %d profiles", 3)
	UserSuccess("saved %s", "Shell")
	UserWarning("skipping %s", "x")
	UserError("failed")

	if got := out.String(); got != "ℹ loaded 3 profiles\n✓ saved Shell\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); got != "⚠ skipping x\n✗ failed\n" {
		t.Errorf("stderr = %q", got)
	}
}
