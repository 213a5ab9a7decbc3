package photonmap

import (
	"fmt"
	"math"
)

// Camera is a pinhole camera; pixel (0,0) is the top-left corner.
type Camera struct {
	Eye, LookAt, Up Vec3
	FOVDeg          Real // vertical field of view
	Width, Height   int

	// cached orthonormal basis and half extents of the image plane at distance 1
	right, up, forward Vec3
	halfW, halfH       Real
}

func NewCamera(eye, lookAt, up Vec3, fovDeg Real, width, height int) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("camera resolution must be > 0, got %dx%d", width, height)
	}
	if !(fovDeg > 0 && fovDeg < 180) {
		return nil, fmt.Errorf("camera fov must be in (0, 180), got %g", fovDeg)
	}
	fwd := lookAt.Sub(eye)
	if fwd.Len() < 1e-12 {
		return nil, fmt.Errorf("camera eye and lookAt coincide: %v", eye)
	}
	fwd = norm(fwd)
	right := fwd.Cross(up)
	if right.Len() < 1e-12 {
		return nil, fmt.Errorf("camera up %v is parallel to the view direction", up)
	}
	right = norm(right)
	c := &Camera{
		Eye: eye, LookAt: lookAt, Up: up, FOVDeg: fovDeg, Width: width, Height: height,
		right: right, up: right.Cross(fwd), forward: fwd,
	}
	c.halfH = math.Tan(fovDeg * math.Pi / 360)
	c.halfW = c.halfH * Real(width) / Real(height)
	DebugLog("Created camera %+v", c)
	return c, nil
}

// Ray returns a primary ray through pixel (i, j), jittered inside the pixel when rng is non-nil.
func (c *Camera) Ray(i, j int, rng Rand) Ray {
	jx, jy := 0.5, 0.5
	if rng != nil {
		jx, jy = rng.Float64(), rng.Float64()
	}
	sx := (Real(i)+jx)/Real(c.Width)*2 - 1
	sy := 1 - (Real(j)+jy)/Real(c.Height)*2
	d := c.forward.Add(c.right.Mul(sx * c.halfW)).Add(c.up.Mul(sy * c.halfH))
	return Ray{Origin: c.Eye, Dir: norm(d)}
}
