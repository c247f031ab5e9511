package gotomars

import "github.com/go-gl/mathgl/mgl64"

// Backend is the rendering backend: a single compiled program with one position
// attribute and the MVP, color and point size uniforms. Vertices are xyz float32.
type Backend interface {
	Clear()
	Viewport(width, height int)
	SetMVP(mvp mgl64.Mat4)
	SetColor(c Color)
	SetPointSize(size float32)
	SetLineWidth(width float32)
	SetDepthTest(enabled bool)
	SetBlend(enabled bool) // source alpha, one minus source alpha
	DrawMesh(m *Mesh)      // indexed triangles
	DrawLineStrip(vertices []float32)
	DrawLines(vertices []float32)
	DrawPoints(vertices []float32)
}
