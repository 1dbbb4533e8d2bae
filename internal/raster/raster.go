// Package raster draws grid collision outlines into images.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"pixeldig/internal/profiling"
	"pixeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/vector"
)

// Outlines fills the world-space outlines of every chunk of g into an alpha
// mask at pixelsPerUnit pixels per world unit. Row 0 is the top of the grid.
// Holes run opposite to their enclosing boundary and cancel out.
func Outlines(g *world.Grid, pixelsPerUnit float32) *image.Alpha {
	defer profiling.Track("raster.Outlines")()

	lo, hi := g.Bounds()
	size := hi.Sub(lo).Mul(pixelsPerUnit)
	w := int(math.Ceil(float64(size.X())))
	h := int(math.Ceil(float64(size.Y())))

	z := vector.NewRasterizer(w, h)
	toPixel := func(p mgl32.Vec2) (float32, float32) {
		return (p.X() - lo.X()) * pixelsPerUnit, (hi.Y() - p.Y()) * pixelsPerUnit
	}
	for _, c := range g.Chunks() {
		for _, path := range c.WorldOutlines() {
			if len(path) < 2 {
				continue
			}
			z.MoveTo(toPixel(path[0]))
			for _, p := range path[1:] {
				z.LineTo(toPixel(p))
			}
			z.ClosePath()
		}
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
