package main

import (
	"pixeldig/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func setupInputHandlers(window *glfw.Window, v *viewer) {
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		v.digging = action == glfw.Press
		v.hasDug = false
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		if yoff > 0 {
			v.camera.Zoom(0.9)
		} else if yoff < 0 {
			v.camera.Zoom(1.1)
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if height > 0 {
			v.camera.AspectRatio = float32(width) / float32(height)
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyEqual, glfw.KeyKPAdd:
			config.SetStencilRadius(config.GetStencilRadius() + 1)
		case glfw.KeyMinus, glfw.KeyKPSubtract:
			config.SetStencilRadius(config.GetStencilRadius() - 1)
		case glfw.KeyO:
			if action == glfw.Press {
				config.SetShowOutlines(!config.GetShowOutlines())
			}
		case glfw.KeyS:
			if action == glfw.Press {
				v.save()
			}
		case glfw.KeyLeft:
			v.pan(mgl32.Vec2{-1, 0})
		case glfw.KeyRight:
			v.pan(mgl32.Vec2{1, 0})
		case glfw.KeyUp:
			v.pan(mgl32.Vec2{0, 1})
		case glfw.KeyDown:
			v.pan(mgl32.Vec2{0, -1})
		}
	})
}
