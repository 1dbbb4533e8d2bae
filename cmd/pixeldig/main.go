package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"pixeldig/internal/config"
	"pixeldig/internal/fx"
	"pixeldig/internal/metrics"
	"pixeldig/internal/render"
	"pixeldig/internal/snapshot"
	"pixeldig/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xlab/closer"
)

var logger = log.New(os.Stderr, "[pixeldig] ", log.LstdFlags)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "yaml config file (defaults are used when empty)")
	loadPath := flag.String("load", "", "snapshot to start from")
	savePath := flag.String("save", "pixeldig.snap", "snapshot written by the S key")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address")
	caves := flag.Bool("caves", false, "pre-carve caves into a fresh grid")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Fatalf("config: %v", err)
		}
	}
	if *caves {
		cfg.Caves.Enabled = true
	}
	if *metricsAddr != "" {
		cfg.Viewer.MetricsAddr = *metricsAddr
	}
	config.SetStencilRadius(cfg.Dig.StencilRadius)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.Viewer.MetricsAddr != "" {
		metrics.Serve(cfg.Viewer.MetricsAddr, reg, logger)
	}

	scene := render.NewScene()
	impacts := fx.NewRecorder(fx.DefaultCapacity)
	opts := []world.Option{
		world.WithBinder(m.Binder(scene.Binder())),
		world.WithImpactNotifier(m.Impacts(impacts)),
		world.WithWorkers(runtime.NumCPU()),
	}

	var grid *world.Grid
	if *loadPath != "" {
		snap, err := snapshot.Load(*loadPath)
		if err != nil {
			logger.Fatalf("load: %v", err)
		}
		grid, err = snapshot.Restore(snap, opts...)
		if err != nil {
			logger.Fatalf("restore %s: %v", *loadPath, err)
		}
	} else {
		if cfg.Caves.Enabled {
			opts = append(opts, world.WithOccupancy(world.CaveOccupancy(cfg.Caves)))
		}
		var err error
		grid, err = world.NewGrid(cfg.Grid, opts...)
		if err != nil {
			logger.Fatalf("grid: %v", err)
		}
	}
	logger.Printf("built %v", grid)

	closer.Bind(func() {
		logger.Printf("dug %d voxels", impacts.Total())
	})

	if err := runWindow(cfg.Viewer, grid, scene, impacts, *savePath); err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}

// runWindow owns the GL context and returns when the window closes.
func runWindow(cfg config.ViewerConfig, grid *world.Grid, scene *render.Scene, impacts *fx.Recorder, savePath string) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg)
	if err != nil {
		return err
	}
	defer window.Destroy()

	v, err := newViewer(window, grid, scene, impacts, savePath)
	if err != nil {
		return err
	}
	defer v.dispose()

	setupInputHandlers(window, v)
	v.run()
	return nil
}

func setupWindow(cfg config.ViewerConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "pixeldig", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	return window, nil
}
