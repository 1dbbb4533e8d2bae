// Command digsnap digs into a grid without a window and writes the result
// as a snapshot and/or a PNG of the collision outlines.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"pixeldig/internal/config"
	"pixeldig/internal/fx"
	"pixeldig/internal/profiling"
	"pixeldig/internal/raster"
	"pixeldig/internal/snapshot"
	"pixeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

var logger = log.New(os.Stderr, "[digsnap] ", log.LstdFlags)

func main() {
	configPath := flag.String("config", "", "yaml config file (defaults are used when empty)")
	loadPath := flag.String("load", "", "snapshot to start from")
	digs := flag.String("dig", "", `world points to dig, e.g. "0,0;0.5,-0.25"`)
	radius := flag.Int("radius", -1, "stencil radius in voxels (config value when negative)")
	pngPath := flag.String("png", "", "write the collision outlines as a PNG")
	savePath := flag.String("save", "", "write the resulting snapshot")
	ppu := flag.Float64("ppu", 64, "PNG pixels per world unit")
	caves := flag.Bool("caves", false, "pre-carve caves into a fresh grid")
	workers := flag.Int("workers", runtime.NumCPU(), "goroutines meshing the initial grid")
	flag.Parse()

	closer.Bind(func() {
		if top := profiling.TopN(5); top != "" {
			logger.Printf("timings: %s", top)
		}
	})

	opts := options{
		configPath: *configPath,
		loadPath:   *loadPath,
		digs:       *digs,
		radius:     *radius,
		pngPath:    *pngPath,
		savePath:   *savePath,
		ppu:        float32(*ppu),
		caves:      *caves,
		workers:    *workers,
	}
	if err := run(opts); err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}

type options struct {
	configPath string
	loadPath   string
	digs       string
	radius     int
	pngPath    string
	savePath   string
	ppu        float32
	caves      bool
	workers    int
}

func run(o options) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	if o.caves {
		cfg.Caves.Enabled = true
	}
	points, err := parsePoints(o.digs)
	if err != nil {
		return err
	}

	impacts := fx.NewRecorder(fx.DefaultCapacity)
	grid, err := buildGrid(cfg, o.loadPath, world.WithImpactNotifier(impacts), world.WithWorkers(o.workers))
	if err != nil {
		return err
	}
	logger.Printf("built %v", grid)

	r := cfg.Dig.StencilRadius
	if o.radius >= 0 {
		r = o.radius
	}
	s := world.NewStencil(r)
	for _, p := range points {
		if !grid.DigAt(p, s) {
			logger.Printf("point %v is outside the grid", p)
		}
	}
	logger.Printf("dug %d voxels at %d points", impacts.Total(), len(points))

	if o.savePath != "" {
		if err := snapshot.Save(o.savePath, snapshot.Capture(grid)); err != nil {
			return err
		}
		logger.Printf("wrote %s", o.savePath)
	}
	if o.pngPath != "" {
		if err := raster.WritePNG(o.pngPath, raster.Outlines(grid, o.ppu)); err != nil {
			return err
		}
		logger.Printf("wrote %s", o.pngPath)
	}
	return nil
}

func buildGrid(cfg config.Config, loadPath string, opts ...world.Option) (*world.Grid, error) {
	if loadPath != "" {
		snap, err := snapshot.Load(loadPath)
		if err != nil {
			return nil, err
		}
		return snapshot.Restore(snap, opts...)
	}
	if cfg.Caves.Enabled {
		opts = append(opts, world.WithOccupancy(world.CaveOccupancy(cfg.Caves)))
	}
	return world.NewGrid(cfg.Grid, opts...)
}

// parsePoints reads "x,y;x,y" into world points.
func parsePoints(s string) ([]mgl32.Vec2, error) {
	var out []mgl32.Vec2
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		xs, ys, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("dig point %q: want x,y", part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
		if err != nil {
			return nil, fmt.Errorf("dig point %q: %w", part, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
		if err != nil {
			return nil, fmt.Errorf("dig point %q: %w", part, err)
		}
		out = append(out, mgl32.Vec2{float32(x), float32(y)})
	}
	return out, nil
}
