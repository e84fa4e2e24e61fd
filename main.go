package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/envmap"
	"github.com/df07/go-skycube-pathtracer/pkg/integrator"
	"github.com/df07/go-skycube-pathtracer/pkg/loaders"
	"github.com/df07/go-skycube-pathtracer/pkg/renderer"
	"github.com/df07/go-skycube-pathtracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, context.Canceled) {
			fmt.Println("Rendering cancelled, partial image saved")
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, renders the configured scene and writes it to disk
func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, opts, err := parseArgs(args, stdout)
	if err != nil {
		return err
	}

	if opts.dumpConfig {
		encoded, err := cfg.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Fprint(stdout, encoded)
		return nil
	}

	if opts.list {
		fmt.Fprintln(stdout, "Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Fprintf(stdout, "  %-10s %s\n", info.ID, info.Description)
		}
		return nil
	}

	logger := &writerLogger{w: stdout}

	fmt.Fprintf(stdout, "Using %s scene...\n", cfg.Scene)
	world, err := buildWorld(cfg, logger)
	if err != nil {
		return err
	}

	settings := integratorSettings(cfg)
	tracer, err := integrator.NewPathTracingIntegrator(settings, world)
	if err != nil {
		return fmt.Errorf("failed to create integrator: %w", err)
	}

	progressive, err := renderer.NewProgressiveRenderer(
		renderer.NewPixelSampler(world.Camera, tracer, settings),
		cfg.Width, cfg.Height,
		renderer.ProgressiveConfig{
			Passes:     cfg.Render.Passes,
			NumWorkers: cfg.Render.Workers,
			Seed:       cfg.Render.Seed,
		},
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	fmt.Fprintf(stdout, "Rendering %dx%d with %d workers, %d passes\n",
		cfg.Width, cfg.Height, progressive.NumWorkers(), cfg.Render.Passes)

	img, renderErr := progressive.Run(ctx)
	if renderErr != nil && !errors.Is(renderErr, context.Canceled) {
		return renderErr
	}
	if img == nil {
		// Cancelled before the first pass finished
		img = progressive.Buffer().Image()
	}

	if err := writePNG(cfg.Output, img); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render saved as %s after %d passes\n", cfg.Output, progressive.CompletedPasses())
	return renderErr
}

// cliOptions are flags that pick an action instead of configuring the render
type cliOptions struct {
	list       bool
	dumpConfig bool
}

// parseArgs layers command line flags over the optional TOML config file
func parseArgs(args []string, stdout io.Writer) (loaders.RenderConfig, cliOptions, error) {
	defaults := loaders.DefaultRenderConfig()

	fs := flag.NewFlagSet("skycube", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configFile := fs.String("config", "", "TOML render configuration file")
	list := fs.Bool("list", false, "List the built-in scenes and exit")
	dumpConfig := fs.Bool("dump-config", false, "Print the effective configuration as TOML and exit")
	sceneName := fs.String("scene", defaults.Scene, "Built-in scene name")
	output := fs.String("output", defaults.Output, "Output PNG path")
	width := fs.Int("width", defaults.Width, "Image width in pixels")
	height := fs.Int("height", defaults.Height, "Image height in pixels")
	passes := fs.Int("passes", defaults.Render.Passes, "Number of progressive passes")
	workers := fs.Int("workers", defaults.Render.Workers, "Number of workers (0 = CPU count)")
	seed := fs.Int64("seed", defaults.Render.Seed, "Base random seed")
	superSamples := fs.Int("ss", defaults.Integrator.SuperSamples, "Super samples per pixel axis")
	env := fs.Bool("env", defaults.Integrator.EnvironmentLighting, "Light the scene with the cube map sky")
	sky := fs.String("sky", defaults.Environment.Set, "Sky set: sponza or hipshot")
	skyRoot := fs.String("skyroot", defaults.Environment.Root, "Directory holding the sky sets")
	fog := fs.Float64("fog", defaults.Environment.FogDensity, "Fog density (enables medium attenuation when > 0)")
	dof := fs.Bool("dof", defaults.Camera.DOF, "Enable depth of field")
	fs.Usage = func() {
		fmt.Fprintln(stdout, "Skycube Path Tracer")
		fmt.Fprintln(stdout, "Usage: skycube [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprint(stdout, loaders.ConfigHelp)
	}

	if err := fs.Parse(args); err != nil {
		return loaders.RenderConfig{}, cliOptions{}, err
	}

	cfg := defaults
	if *configFile != "" {
		loaded, err := loaders.LoadRenderConfig(*configFile)
		if err != nil {
			return loaders.RenderConfig{}, cliOptions{}, err
		}
		cfg = loaded
	}

	// Only flags given explicitly override the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneName
		case "output":
			cfg.Output = *output
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "passes":
			cfg.Render.Passes = *passes
		case "workers":
			cfg.Render.Workers = *workers
		case "seed":
			cfg.Render.Seed = *seed
		case "ss":
			cfg.Integrator.SuperSamples = *superSamples
		case "env":
			cfg.Integrator.EnvironmentLighting = *env
		case "sky":
			cfg.Environment.Set = *sky
		case "skyroot":
			cfg.Environment.Root = *skyRoot
		case "fog":
			cfg.Environment.FogDensity = *fog
			cfg.Integrator.MediumAttenuation = *fog > 0
		case "dof":
			cfg.Camera.DOF = *dof
		}
	})

	if err := cfg.Validate(); err != nil {
		return loaders.RenderConfig{}, cliOptions{}, err
	}
	return cfg, cliOptions{list: *list, dumpConfig: *dumpConfig}, nil
}

// buildWorld creates the scene and attaches the sky and fog it is configured with
func buildWorld(cfg loaders.RenderConfig, logger core.Logger) (*scene.Scene, error) {
	world, err := scene.Build(cfg.Scene, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Integrator.EnvironmentLighting {
		set, err := envmap.ParseSkySet(cfg.Environment.Set)
		if err != nil {
			return nil, err
		}
		cube, err := envmap.LoadCubeMap(cfg.Environment.Root, set)
		if err != nil {
			return nil, fmt.Errorf("failed to load sky: %w", err)
		}
		logger.Printf("Loaded %s sky from %s\n", set, cfg.Environment.Root)
		world = world.WithEnvironment(cube)
	}

	if cfg.Environment.FogDensity > 0 {
		d := cfg.Environment.FogDensity
		fog, err := scene.NewHomogeneousMedium(core.NewVec3(d, d, d))
		if err != nil {
			return nil, err
		}
		world = world.WithMedium(fog)
	}

	return world, nil
}

func integratorSettings(cfg loaders.RenderConfig) integrator.Settings {
	return integrator.Settings{
		Emitted:             cfg.Integrator.Emitted,
		DirectDiffuse:       cfg.Integrator.DirectDiffuse,
		DirectSpecular:      cfg.Integrator.DirectSpecular,
		Indirect:            cfg.Integrator.Indirect,
		EnvironmentLighting: cfg.Integrator.EnvironmentLighting,
		MediumAttenuation:   cfg.Integrator.MediumAttenuation,
		SuperSamples:        cfg.Integrator.SuperSamples,
		MaxDepth:            cfg.Integrator.MaxDepth,
		DOFEnabled:          cfg.Camera.DOF,
		DOFSamples:          cfg.Camera.DOFSamples,
		LensRadius:          cfg.Camera.LensRadius,
		FocusDistance:       cfg.Camera.FocusDistance,
	}
}

func writePNG(filename string, img image.Image) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}

// writerLogger prints progress to the command's output
type writerLogger struct {
	w io.Writer
}

func (l *writerLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}
