package main

import (
	"time"

	"pixeldig/internal/config"
	"pixeldig/internal/fx"
	"pixeldig/internal/physics"
	"pixeldig/internal/profiling"
	"pixeldig/internal/render"
	"pixeldig/internal/snapshot"
	"pixeldig/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type viewer struct {
	window  *glfw.Window
	grid    *world.Grid
	scene   *render.Scene
	impacts *fx.Recorder
	camera  *render.Camera

	meshShader *render.Shader
	lineShader *render.Shader

	savePath string
	digging  bool
	lastDig  world.Coord
	hasDug   bool
}

func newViewer(window *glfw.Window, grid *world.Grid, scene *render.Scene, impacts *fx.Recorder, savePath string) (*viewer, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	mesh, err := render.LoadShader(render.MeshShader)
	if err != nil {
		return nil, err
	}
	line, err := render.LoadShader(render.LineShader)
	if err != nil {
		return nil, err
	}

	lo, hi := grid.Bounds()
	size := hi.Sub(lo)
	center := lo.Add(size.Mul(0.5))
	w, h := window.GetFramebufferSize()
	cam := render.NewCamera(w, h, center, 1.4*max(size.X(), size.Y()))

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.12, 0.14, 0.18, 1.0)

	return &viewer{
		window:     window,
		grid:       grid,
		scene:      scene,
		impacts:    impacts,
		camera:     cam,
		meshShader: mesh,
		lineShader: line,
		savePath:   savePath,
	}, nil
}

func (v *viewer) run() {
	frames, dug := 0, 0
	lastReport := time.Now()

	for !v.window.ShouldClose() {
		profiling.ResetFrame()

		if v.digging {
			v.digUnderCursor()
		}
		dug += len(v.impacts.Drain())

		func() {
			defer profiling.Track("render.Scene.Draw")()
			w, h := v.window.GetFramebufferSize()
			gl.Viewport(0, 0, int32(w), int32(h))
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
			v.scene.Draw(v.meshShader, v.lineShader, v.camera, config.GetShowOutlines())
		}()

		v.window.SwapBuffers()
		func() {
			defer profiling.Track("glfw.PollEvents")()
			glfw.PollEvents()
		}()
		frames++

		if time.Since(lastReport) >= time.Second {
			logger.Printf("fps=%d radius=%d dug=%d world=%v top: %s",
				frames, config.GetStencilRadius(), dug, profiling.SumWithPrefix("world."), profiling.TopN(4))
			frames, dug = 0, 0
			lastReport = time.Now()
		}
	}
}

// digUnderCursor digs once per voxel while the button is held.
func (v *viewer) digUnderCursor() {
	x, y := v.window.GetCursorPos()
	ww, wh := v.window.GetSize()
	origin, dir, ok := v.camera.Ray(x, y, ww, wh)
	if !ok {
		return
	}
	hit := physics.TranslateHit(v.grid, origin, dir)
	if !hit.Hit {
		return
	}
	res := v.grid.Layout().ChunkResolution
	abs := world.Coord{X: hit.Chunk.X*res[0] + hit.Voxel.X, Y: hit.Chunk.Y*res[1] + hit.Voxel.Y}
	if v.hasDug && abs == v.lastDig {
		return
	}
	v.grid.Dig(hit.Chunk, hit.Voxel, world.NewStencil(config.GetStencilRadius()))
	v.lastDig, v.hasDug = abs, true
}

func (v *viewer) save() {
	if err := snapshot.Save(v.savePath, snapshot.Capture(v.grid)); err != nil {
		logger.Printf("save: %v", err)
		return
	}
	logger.Printf("saved %s", v.savePath)
}

func (v *viewer) pan(d mgl32.Vec2) {
	v.camera.Target = v.camera.Target.Add(d.Mul(v.camera.Distance * 0.05))
}

func (v *viewer) dispose() {
	v.scene.Dispose()
	v.meshShader.Delete()
	v.lineShader.Delete()
}
