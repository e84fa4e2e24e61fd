package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	Passes     int   // Number of full-image passes
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Worker i samples with seed Seed+i
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		Passes:     100,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int           // 0-indexed pass that just completed
	Elapsed    time.Duration // Time since the render started
	Image      *image.RGBA   // Snapshot of the accumulated image
}

// ProgressiveRenderer runs full-image passes on a worker pool and keeps the running
// mean of every pass in an accumulation buffer. Worker i of N owns rows i, i+N, i+2N...
type ProgressiveRenderer struct {
	width, height int
	viewport      image.Rectangle
	config        ProgressiveConfig
	pixelSampler  *PixelSampler
	buffer        *AccumulationBuffer
	pool          *WorkerPool
	samplers      []core.Sampler
	currentPass   atomic.Int64
	completed     atomic.Int64
	running       atomic.Bool
	logger        core.Logger
}

// NewProgressiveRenderer creates a renderer for a width×height image
func NewProgressiveRenderer(pixelSampler *PixelSampler, width, height int, config ProgressiveConfig, logger core.Logger) (*ProgressiveRenderer, error) {
	if pixelSampler == nil {
		return nil, fmt.Errorf("renderer needs a pixel sampler")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d", width, height)
	}
	if config.Passes <= 0 {
		return nil, fmt.Errorf("passes must be positive, got %d", config.Passes)
	}
	if config.NumWorkers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", config.NumWorkers)
	}
	if config.NumWorkers == 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	// A worker without rows would only idle
	config.NumWorkers = min(config.NumWorkers, height)
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &ProgressiveRenderer{
		width:        width,
		height:       height,
		viewport:     image.Rect(0, 0, width, height),
		config:       config,
		pixelSampler: pixelSampler,
		buffer:       NewAccumulationBuffer(width, height),
		logger:       logger,
	}, nil
}

// NumWorkers returns the size of the worker pool
func (pr *ProgressiveRenderer) NumWorkers() int {
	return pr.config.NumWorkers
}

// CurrentPass returns the index of the pass in flight, or the pass count once the
// render has finished. Safe to call from any goroutine.
func (pr *ProgressiveRenderer) CurrentPass() int {
	return int(pr.currentPass.Load())
}

// CompletedPasses returns the number of passes fully accumulated into the buffer
func (pr *ProgressiveRenderer) CompletedPasses() int {
	return int(pr.completed.Load())
}

// Buffer returns the accumulation buffer of the current render. Values read while a
// pass is running may mix two passes.
func (pr *ProgressiveRenderer) Buffer() *AccumulationBuffer {
	return pr.buffer
}

// renderRows renders every row owned by worker for one pass
func (pr *ProgressiveRenderer) renderRows(worker, pass int) error {
	sampler := pr.samplers[worker]
	for y := worker; y < pr.height; y += pr.config.NumWorkers {
		for x := 0; x < pr.width; x++ {
			sample := pr.pixelSampler.SamplePixel(x, y, pr.viewport, sampler)
			pr.buffer.Accumulate(x, y, pass, sample)
		}
	}
	return nil
}

// reset discards any previous render and prepares the workers
func (pr *ProgressiveRenderer) reset() error {
	pr.buffer = NewAccumulationBuffer(pr.width, pr.height)
	pr.currentPass.Store(0)
	pr.completed.Store(0)

	pr.samplers = make([]core.Sampler, pr.config.NumWorkers)
	for i := range pr.samplers {
		pr.samplers[i] = core.NewRandomSampler(rand.New(rand.NewSource(pr.config.Seed + int64(i))))
	}

	pool, err := NewWorkerPool(pr.config.NumWorkers, pr.renderRows)
	if err != nil {
		return err
	}
	pr.pool = pool
	return nil
}

// RenderProgressive renders with channel-based communication (idiomatic Go)
// Returns channels for events. The caller should read from these channels in separate goroutines.
// Cancelling ctx stops the render at the next pass boundary; a pass in flight always completes.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	if !pr.running.CompareAndSwap(false, true) {
		close(passChan)
		errChan <- fmt.Errorf("render already in progress")
		close(errChan)
		return passChan, errChan
	}

	if err := pr.reset(); err != nil {
		pr.running.Store(false)
		close(passChan)
		errChan <- err
		close(errChan)
		return passChan, errChan
	}

	go func() {
		defer close(passChan)
		defer close(errChan)
		defer pr.running.Store(false)

		pr.pool.Start()
		defer pr.pool.Stop()

		pr.logger.Printf("Starting progressive rendering with %d passes (using %d workers)...\n",
			pr.config.Passes, pr.pool.NumWorkers())
		start := time.Now()

		for pass := 0; pass < pr.config.Passes; pass++ {
			// Check for cancellation before starting this pass
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			pr.currentPass.Store(int64(pass))
			pr.logger.Printf("[%.3f s] Pass %d...\n", time.Since(start).Seconds(), pass)

			if err := pr.pool.RunPass(pass); err != nil {
				errChan <- fmt.Errorf("pass %d: %w", pass, err)
				return
			}
			pr.completed.Store(int64(pass + 1))

			result := PassResult{
				PassNumber: pass,
				Elapsed:    time.Since(start),
				Image:      pr.buffer.Image(),
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled after pass %d\n", pass)
				errChan <- ctx.Err()
				return
			}
		}

		pr.currentPass.Store(int64(pr.config.Passes))
		pr.logger.Printf("Render completed: %d passes in %v\n", pr.config.Passes, time.Since(start))
	}()

	return passChan, errChan
}

// Run renders every pass and returns the final image
func (pr *ProgressiveRenderer) Run(ctx context.Context) (*image.RGBA, error) {
	passChan, errChan := pr.RenderProgressive(ctx)

	var last *image.RGBA
	for result := range passChan {
		last = result.Image
	}
	if err := <-errChan; err != nil {
		return last, err
	}
	return last, nil
}
