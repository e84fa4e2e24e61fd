package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-skycube-pathtracer/pkg/envmap"
	"github.com/df07/go-skycube-pathtracer/pkg/loaders"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "render.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func writeSky(t *testing.T, root string, set envmap.SkySet) {
	t.Helper()
	files, err := set.Files(root)
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	for _, name := range files {
		if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
			t.Fatalf("failed to create sky dir: %v", err)
		}
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				img.Set(x, y, color.RGBA{R: 128, G: 160, B: 255, A: 255})
			}
		}
		f, err := os.Create(name)
		if err != nil {
			t.Fatalf("failed to create face: %v", err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatalf("failed to encode face: %v", err)
		}
		f.Close()
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg, opts, err := parseArgs(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	if opts.list || opts.dumpConfig {
		t.Errorf("expected no action flags, got %+v", opts)
	}
	if cfg.Scene != "cornell" || cfg.Width != 400 || cfg.Render.Passes != 100 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseArgs_FlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, `
scene = "skylit"
width = 64
height = 48

[render]
passes = 7
seed = 3
`)

	cfg, _, err := parseArgs([]string{"-config", path, "-passes", "2", "-fog", "0.3"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}

	if cfg.Scene != "skylit" || cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("config file values lost: %+v", cfg)
	}
	if cfg.Render.Passes != 2 {
		t.Errorf("expected -passes to override file, got %d", cfg.Render.Passes)
	}
	if cfg.Render.Seed != 3 {
		t.Errorf("expected seed from file, got %d", cfg.Render.Seed)
	}
	if cfg.Environment.FogDensity != 0.3 || !cfg.Integrator.MediumAttenuation {
		t.Errorf("expected fog to enable medium attenuation: %+v", cfg.Environment)
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing config file", []string{"-config", "does-not-exist.toml"}},
		{"invalid width", []string{"-width", "0"}},
		{"unknown flag", []string{"-bogus"}},
		{"negative fog", []string{"-fog", "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parseArgs(tt.args, &bytes.Buffer{}); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-help"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "[integrator]") {
		t.Error("expected help to include the config reference")
	}
}

func TestRun_List(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-list"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, id := range []string{"cornell", "skylit"} {
		if !strings.Contains(out.String(), id) {
			t.Errorf("expected %q in scene list:\n%s", id, out.String())
		}
	}
}

func TestRun_DumpConfig(t *testing.T) {
	var out bytes.Buffer
	args := []string{"-dump-config", "-scene", "skylit", "-passes", "9", "-fog", "0.25"}
	if err := run(context.Background(), args, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// The dump is a config file that loads back to the same settings
	cfg, err := loaders.ParseRenderConfig(out.String())
	if err != nil {
		t.Fatalf("dumped config does not parse: %v\n%s", err, out.String())
	}
	if cfg.Scene != "skylit" || cfg.Render.Passes != 9 || cfg.Environment.FogDensity != 0.25 || !cfg.Integrator.MediumAttenuation {
		t.Errorf("unexpected round-tripped config: %+v", cfg)
	}
}

func TestRun_CompletedPassCount(t *testing.T) {
	var out bytes.Buffer
	args := []string{"-width", "4", "-height", "4", "-passes", "3", "-output", filepath.Join(t.TempDir(), "count.png")}
	if err := run(context.Background(), args, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "after 3 passes") {
		t.Errorf("expected the saved message to report 3 passes:\n%s", out.String())
	}
}

func TestRun_UnknownScene(t *testing.T) {
	err := run(context.Background(), []string{"-scene", "teapot", "-output", filepath.Join(t.TempDir(), "x.png")}, &bytes.Buffer{})
	if err == nil {
		t.Error("expected error for unknown scene")
	}
}

func TestRun_Cornell(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out", "cornell.png")
	args := []string{"-scene", "cornell", "-width", "16", "-height", "12", "-passes", "2", "-workers", "2", "-output", output}

	var out bytes.Buffer
	if err := run(context.Background(), args, &out); err != nil {
		t.Fatalf("run failed: %v\n%s", err, out.String())
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 12 {
		t.Errorf("unexpected output size %v", img.Bounds())
	}
	if !strings.Contains(out.String(), "light-emitting") {
		t.Error("expected emitter count in the log")
	}
}

func TestRun_SkylitWithEnvironment(t *testing.T) {
	root := t.TempDir()
	writeSky(t, root, envmap.Hipshot)
	output := filepath.Join(t.TempDir(), "sky.png")

	args := []string{"-scene", "skylit", "-env", "-sky", "hipshot", "-skyroot", root,
		"-width", "8", "-height", "8", "-passes", "1", "-output", output}
	if err := run(context.Background(), args, &bytes.Buffer{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestRun_MissingSky(t *testing.T) {
	args := []string{"-scene", "skylit", "-env", "-skyroot", t.TempDir(),
		"-width", "8", "-height", "8", "-passes", "1", "-output", filepath.Join(t.TempDir(), "x.png")}
	if err := run(context.Background(), args, &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing sky faces")
	}
}

func TestRun_CancelledStillWritesImage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	output := filepath.Join(t.TempDir(), "cancelled.png")
	args := []string{"-width", "8", "-height", "8", "-passes", "5", "-output", output}
	err := run(ctx, args, &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, statErr := os.Stat(output); statErr != nil {
		t.Errorf("expected partial output file: %v", statErr)
	}
}
