package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera looks at the grid plane from the negative z side, where the surface
// meshes face. World x and y map to screen right and up.
type Camera struct {
	Target      mgl32.Vec2 // point on the plane under the screen center
	Distance    float32
	AspectRatio float32
	FOV         float32 // degrees
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(width, height int, target mgl32.Vec2, distance float32) *Camera {
	return &Camera{
		Target:      target,
		Distance:    distance,
		AspectRatio: float32(width) / float32(height),
		FOV:         45.0,
		NearPlane:   0.01,
		FarPlane:    100.0,
	}
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl32.Vec3 {
	return mgl32.Vec3{c.Target.X(), c.Target.Y(), -c.Distance}
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// View maps world z to eye-space depth so that larger z is farther away.
func (c *Camera) View() mgl32.Mat4 {
	eye := c.Eye()
	return mgl32.Scale3D(1, 1, -1).Mul4(mgl32.Translate3D(-eye.X(), -eye.Y(), -eye.Z()))
}

// Ray returns the world-space ray under window pixel (x, y), with y growing
// downwards as reported by the windowing system.
func (c *Camera) Ray(x, y float64, width, height int) (origin, dir mgl32.Vec3, ok bool) {
	view, proj := c.View(), c.Projection()
	winX := float32(x)
	winY := float32(height) - float32(y)

	near, err := mgl32.UnProject(mgl32.Vec3{winX, winY, 0}, view, proj, 0, 0, width, height)
	if err != nil {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	far, err := mgl32.UnProject(mgl32.Vec3{winX, winY, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	return near, far.Sub(near).Normalize(), true
}

// Zoom scales the distance by f, keeping it within the clip range.
func (c *Camera) Zoom(f float32) {
	c.Distance = mgl32.Clamp(c.Distance*f, 2*c.NearPlane, c.FarPlane/2)
}
