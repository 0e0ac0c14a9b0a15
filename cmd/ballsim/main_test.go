package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/logging"
	"github.com/san-kum/ballsim/internal/render"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func ballCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	logger = logging.Discard()
	cmd := &cobra.Command{Use: "test"}
	addBallFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestResolveConfig_Fallback(t *testing.T) {
	cfg, err := resolveConfig(ballCmd(t), "stress")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scenario != "stress" || cfg.InitState.Y != 1000 || cfg.RestThreshold != 0 {
		t.Errorf("expected stress preset, got %+v", cfg)
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ball.yaml")
	if err := os.WriteFile(path, []byte("restitution: 0.9\ndt: 0.05\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := ballCmd(t, "--preset", "elastic", "--config", path, "--dt", "0.02")
	cfg, err := resolveConfig(cmd, "animation")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Scenario != "elastic" || cfg.InitState.Y != 10 {
		t.Errorf("preset values lost: %+v", cfg)
	}
	if cfg.Restitution != 0.9 {
		t.Errorf("config file should override preset, got restitution %f", cfg.Restitution)
	}
	if cfg.Dt != 0.02 {
		t.Errorf("flag should override config file, got dt %f", cfg.Dt)
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	if _, err := resolveConfig(ballCmd(t, "--preset", "nope"), "animation"); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if _, err := resolveConfig(ballCmd(t, "--dt", "0"), "animation"); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := resolveConfig(ballCmd(t, "--restitution", "1.5"), "animation"); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestAnimateCommand(t *testing.T) {
	out, err := execute(t, "animate", "--steps", "10")
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != render.StartMarker || lines[3] != render.EndMarker {
		t.Errorf("missing markers: %q", out)
	}
	if lines[1] != strings.Repeat(" ", 19)+"O" {
		t.Errorf("unexpected first row %q", lines[1])
	}
}

func TestSumCommand(t *testing.T) {
	out, err := execute(t, "sum", "--n", "1000")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "499500") {
		t.Errorf("sum missing from output: %s", out)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"animation", "stress", "elastic", "dead"} {
		if !strings.Contains(out, name) {
			t.Errorf("preset %s missing", name)
		}
	}
}

func TestRunListExport(t *testing.T) {
	data := t.TempDir()

	out, err := execute(t, "run", "--data", data, "--steps", "200")
	if err != nil {
		t.Fatal(err)
	}
	m := regexp.MustCompile(`run id: (\S+)`).FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no run id in output: %s", out)
	}
	id := m[1]
	if !strings.Contains(out, "first contact: 88") {
		t.Errorf("expected first contact at 88: %s", out)
	}

	out, err = execute(t, "list", "--data", data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, id) {
		t.Errorf("list missing %s: %s", id, out)
	}

	out, err = execute(t, "export-json", id, "--data", data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"scenario": "animation"`) {
		t.Errorf("unexpected export: %s", out)
	}

	if _, err := execute(t, "analyze", id, "--data", data); err != nil {
		t.Errorf("analyze failed: %v", err)
	}
	if _, err := execute(t, "plot", id, "--data", data); err != nil {
		t.Errorf("plot failed: %v", err)
	}

	out, err = execute(t, "export-svg", id, "--data", data, "--width", "320")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `width="320"`) {
		t.Errorf("unexpected svg: %.200s", out)
	}
}

func TestListCommand_Empty(t *testing.T) {
	out, err := execute(t, "list", "--data", filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "no runs found") {
		t.Errorf("unexpected output: %s", out)
	}
}
