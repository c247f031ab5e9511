package main

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ms/gotomars"
	"golang.org/x/mobile/gl"
)

const vertexShader = `#version 100
attribute vec3 aPosition;
uniform mat4 uMVP;
uniform float uPointSize;
void main() {
	gl_Position = uMVP * vec4(aPosition, 1.0);
	gl_PointSize = uPointSize;
}`

const fragmentShader = `#version 100
precision mediump float;
uniform vec4 uColor;
void main() {
	gl_FragColor = uColor;
}`

type meshBuffers struct {
	vertices, indices gl.Buffer
	count             int
}

// glBackend draws through a single flat color program on an OpenGL ES 2 context.
type glBackend struct {
	glctx      gl.Context
	prog       gl.Program
	aPosition  gl.Attrib
	uMVP       gl.Uniform
	uColor     gl.Uniform
	uPointSize gl.Uniform
	meshes     map[*gotomars.Mesh]meshBuffers
	stream     gl.Buffer // reused for every line and point draw
}

func newGLBackend(glctx gl.Context) (*glBackend, error) {
	prog, err := linkProgram(glctx, vertexShader, fragmentShader)
	if err != nil {
		return nil, err
	}
	b := &glBackend{
		glctx:      glctx,
		prog:       prog,
		aPosition:  glctx.GetAttribLocation(prog, "aPosition"),
		uMVP:       glctx.GetUniformLocation(prog, "uMVP"),
		uColor:     glctx.GetUniformLocation(prog, "uColor"),
		uPointSize: glctx.GetUniformLocation(prog, "uPointSize"),
		meshes:     make(map[*gotomars.Mesh]meshBuffers),
		stream:     glctx.CreateBuffer(),
	}
	glctx.ClearColor(0, 0, 0, 1)
	glctx.Enable(gl.DEPTH_TEST)
	glctx.Disable(gl.CULL_FACE) // both sides, full spheres are visible
	return b, nil
}

func (b *glBackend) release() {
	for _, m := range b.meshes {
		b.glctx.DeleteBuffer(m.vertices)
		b.glctx.DeleteBuffer(m.indices)
	}
	b.glctx.DeleteBuffer(b.stream)
	b.glctx.DeleteProgram(b.prog)
}

func (b *glBackend) Clear() {
	b.glctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	b.glctx.UseProgram(b.prog)
}

func (b *glBackend) Viewport(width, height int) {
	b.glctx.Viewport(0, 0, width, height)
}

func (b *glBackend) SetMVP(mvp mgl64.Mat4) {
	m := gotomars.Float32s(mvp)
	b.glctx.UniformMatrix4fv(b.uMVP, m[:])
}

func (b *glBackend) SetColor(c gotomars.Color) {
	b.glctx.Uniform4f(b.uColor, c[0], c[1], c[2], c[3])
}

func (b *glBackend) SetPointSize(size float32) {
	b.glctx.Uniform1f(b.uPointSize, size)
}

func (b *glBackend) SetLineWidth(width float32) {
	b.glctx.LineWidth(width)
}

func (b *glBackend) SetDepthTest(enabled bool) {
	if enabled {
		b.glctx.Enable(gl.DEPTH_TEST)
	} else {
		b.glctx.Disable(gl.DEPTH_TEST)
	}
}

func (b *glBackend) SetBlend(enabled bool) {
	if enabled {
		b.glctx.Enable(gl.BLEND)
		b.glctx.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		b.glctx.Disable(gl.BLEND)
	}
}

func (b *glBackend) DrawMesh(m *gotomars.Mesh) {
	buf, ok := b.meshes[m]
	if !ok {
		buf = meshBuffers{vertices: b.glctx.CreateBuffer(), indices: b.glctx.CreateBuffer(), count: len(m.Indices)}
		b.glctx.BindBuffer(gl.ARRAY_BUFFER, buf.vertices)
		b.glctx.BufferData(gl.ARRAY_BUFFER, f32bytes(m.Vertices), gl.STATIC_DRAW)
		b.glctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.indices)
		b.glctx.BufferData(gl.ELEMENT_ARRAY_BUFFER, u16bytes(m.Indices), gl.STATIC_DRAW)
		b.meshes[m] = buf
	}
	b.glctx.BindBuffer(gl.ARRAY_BUFFER, buf.vertices)
	b.glctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.indices)
	b.glctx.EnableVertexAttribArray(b.aPosition)
	b.glctx.VertexAttribPointer(b.aPosition, 3, gl.FLOAT, false, 3*4, 0)
	b.glctx.DrawElements(gl.TRIANGLES, buf.count, gl.UNSIGNED_SHORT, 0)
	b.glctx.DisableVertexAttribArray(b.aPosition)
}

func (b *glBackend) DrawLineStrip(vertices []float32) {
	b.drawArrays(gl.LINE_STRIP, vertices)
}

func (b *glBackend) DrawLines(vertices []float32) {
	b.drawArrays(gl.LINES, vertices)
}

func (b *glBackend) DrawPoints(vertices []float32) {
	b.drawArrays(gl.POINTS, vertices)
}

func (b *glBackend) drawArrays(mode gl.Enum, vertices []float32) {
	if len(vertices) < 3 {
		return
	}
	b.glctx.BindBuffer(gl.ARRAY_BUFFER, b.stream)
	b.glctx.BufferData(gl.ARRAY_BUFFER, f32bytes(vertices), gl.STREAM_DRAW)
	b.glctx.EnableVertexAttribArray(b.aPosition)
	b.glctx.VertexAttribPointer(b.aPosition, 3, gl.FLOAT, false, 3*4, 0)
	b.glctx.DrawArrays(mode, 0, len(vertices)/3)
	b.glctx.DisableVertexAttribArray(b.aPosition)
}

func f32bytes(vals []float32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func u16bytes(vals []uint16) []byte {
	out := make([]byte, len(vals)*2)
	for i, v := range vals {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out
}

func compileShader(glctx gl.Context, kind gl.Enum, src string) (gl.Shader, error) {
	sh := glctx.CreateShader(kind)
	glctx.ShaderSource(sh, src)
	glctx.CompileShader(sh)
	if glctx.GetShaderi(sh, gl.COMPILE_STATUS) == 0 {
		log := glctx.GetShaderInfoLog(sh)
		glctx.DeleteShader(sh)
		return gl.Shader{}, fmt.Errorf("shader compile failed: %s", log)
	}
	return sh, nil
}

func linkProgram(glctx gl.Context, vertSrc, fragSrc string) (gl.Program, error) {
	vs, err := compileShader(glctx, gl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return gl.Program{}, err
	}
	fs, err := compileShader(glctx, gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		glctx.DeleteShader(vs)
		return gl.Program{}, err
	}
	prog := glctx.CreateProgram()
	glctx.AttachShader(prog, vs)
	glctx.AttachShader(prog, fs)
	glctx.LinkProgram(prog)
	glctx.DeleteShader(vs)
	glctx.DeleteShader(fs)
	if glctx.GetProgrami(prog, gl.LINK_STATUS) == 0 {
		log := glctx.GetProgramInfoLog(prog)
		glctx.DeleteProgram(prog)
		return gl.Program{}, fmt.Errorf("program link failed: %s", log)
	}
	return prog, nil
}
