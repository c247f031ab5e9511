package gotomars

import (
	"fmt"
	"math"
)

// Mesh is an indexed triangle list of xyz vertices in object space.
type Mesh struct {
	Vertices []float32
	Indices  []uint16
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// Polyline is a list of xyz vertices drawn as a line strip, or as points.
type Polyline struct {
	Vertices []float32
}

// VertexCount returns the number of vertices.
func (p *Polyline) VertexCount() int {
	return len(p.Vertices) / 3
}

// Sphere returns a UV sphere with a shared seam: (stacks+1)*(slices+1) vertices.
func Sphere(radius float64, stacks, slices int) *Mesh {
	if stacks < 1 || slices < 3 {
		panic(fmt.Errorf("invalid sphere resolution %dx%d", stacks, slices))
	}
	cols := slices + 1
	if (stacks+1)*cols > math.MaxUint16+1 {
		panic(fmt.Errorf("sphere %dx%d does not fit 16 bit indices", stacks, slices))
	}
	m := &Mesh{
		Vertices: make([]float32, 0, 3*(stacks+1)*cols),
		Indices:  make([]uint16, 0, 6*stacks*slices),
	}
	for i := 0; i <= stacks; i++ {
		φ := math.Pi * float64(i) / float64(stacks) // 0..π
		r, y := math.Sincos(φ)
		for j := 0; j <= slices; j++ {
			θ := twoPi * float64(j) / float64(slices)
			sθ, cθ := math.Sincos(θ)
			m.Vertices = append(m.Vertices, float32(r*cθ*radius), float32(y*radius), float32(r*sθ*radius))
		}
	}
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint16(i*cols + j)
			b := uint16((i+1)*cols + j)
			c := uint16((i+1)*cols + j + 1)
			d := uint16(i*cols + j + 1)
			m.Indices = append(m.Indices, a, b, c, a, c, d)
		}
	}
	return m
}

// Circle returns the closed unit circle in the XZ plane: the last of the segments+1
// points repeats the first angle.
func Circle(segments int) *Polyline {
	if segments < 3 {
		panic(fmt.Errorf("a circle needs at least 3 segments, got %d", segments))
	}
	p := &Polyline{Vertices: make([]float32, 0, 3*(segments+1))}
	for i := 0; i <= segments; i++ {
		s, c := math.Sincos(twoPi * float64(i) / float64(segments))
		p.Vertices = append(p.Vertices, float32(c), 0, float32(s))
	}
	return p
}

// Cube returns an axis aligned cube of the given edge length centered on the origin.
func Cube(size float64) *Mesh {
	s := float32(size / 2)
	return &Mesh{
		Vertices: []float32{
			-s, -s, -s, s, -s, -s, s, s, -s, -s, s, -s,
			-s, -s, s, s, -s, s, s, s, s, -s, s, s,
		},
		Indices: []uint16{
			0, 1, 2, 0, 2, 3, // back
			4, 5, 6, 4, 6, 7, // front
			0, 1, 5, 0, 5, 4, // bottom
			2, 3, 7, 2, 7, 6, // top
			1, 2, 6, 1, 6, 5, // right
			0, 3, 7, 0, 7, 4, // left
		},
	}
}

// lcg is the linear congruential generator used to place the stars, so that the
// sky is the same on every run.
type lcg struct {
	seed uint64
}

// next returns the next sample in [0, 1].
func (g *lcg) next() float64 {
	g.seed = (g.seed*1664525 + 1013904223) & 0xffffffff
	return float64((g.seed>>8)&0xffffff) / 0xffffff
}

// StarField returns count points uniformly distributed on a sphere of the given radius.
func StarField(count int, radius float64, seed uint64) *Polyline {
	g := &lcg{seed: seed}
	p := &Polyline{Vertices: make([]float32, 0, 3*count)}
	for i := 0; i < count; i++ {
		u := g.next()*2 - 1 // uniform in z gives a uniform density on the sphere
		θ := g.next() * twoPi
		rxy := math.Sqrt(math.Max(0, 1-u*u))
		s, c := math.Sincos(θ)
		p.Vertices = append(p.Vertices, float32(rxy*c*radius), float32(u*radius), float32(rxy*s*radius))
	}
	return p
}
