// Command voxels is the reference host application for the terrain
// streaming pipeline: it samples a procedural density field, drives the
// single-threaded chunk/surface/mesh work queue every frame, and uploads
// finished meshes into a bounded GPU bucket pool, drawn with one indexed
// draw call per GPU buffer.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"openglhelper"

	"github.com/leterax/voxelstream/pkg/gpu"
	"github.com/leterax/voxelstream/pkg/render"
	"github.com/leterax/voxelstream/pkg/terrain"
	"github.com/leterax/voxelstream/pkg/voxel"
)

func init() {
	runtime.LockOSThread()
}

const (
	chunkDegree        = 4 // 16 voxels per axis
	sampleScale        = 1.0
	chunkScale         = 1.0
	viewDist           = 3
	genDist            = 4
	operationsPerFrame = 64
	numBuffers         = 4
	bucketsPerBuffer   = 16
)

func main() {
	viewDistFlag := flag.Int("viewdist", viewDist, "view distance, in chunks")
	flag.Parse()

	window, err := openglhelper.NewWindow(1280, 720, "voxelstream", true)
	if err != nil {
		log.Fatalf("failed to create window: %v", err)
	}
	defer window.Close()

	shader, err := openglhelper.NewShader(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		log.Fatalf("failed to compile terrain shader: %v", err)
	}
	defer shader.Delete()

	camera := render.NewCamera(mgl32.Vec3{0, 12, 24})
	camera.LookAt(mgl32.Vec3{0, 0, 0})

	window.SetMouseCaptured(true)
	window.GLFWWindow().SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		camera.HandleMouseScroll(yoff)
	})

	oracle := planetOracle(24.0)
	manager := terrain.NewChunkManager(chunkDegree, sampleScale, chunkScale, int32(*viewDistFlag), genDist, operationsPerFrame, oracle)

	sink := gpu.NewGLBufferSink(numBuffers, bucketsPerBuffer*terrain.MaxVertices*vertexByteSize, bucketsPerBuffer*terrain.MaxIndices*4)
	defer sink.Delete()
	bufferManager := gpu.NewIndexedBufferManager(numBuffers, bucketsPerBuffer, sink)

	vaos := make([]*openglhelper.VertexArrayObject, numBuffers)
	for i := range vaos {
		vaos[i] = buildVAO(sink.VertexBuffers[i], sink.IndexBuffers[i])
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	var frameCount int
	lastStats := time.Now()
	lastFrame := time.Now()

	for !window.ShouldClose() {
		window.PollEvents()

		now := time.Now()
		deltaTime := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		if window.GetKeyState(render.KeyEscape) == render.Press {
			break
		}
		camera.ProcessKeyboardInput(deltaTime, window)
		mx, my := window.GLFWWindow().GetCursorPos()
		camera.HandleMouseMovement(mx, my)

		curChunk := voxel.ChunkCoord{
			X: int32(math.Floor(float64(camera.Position().X()) / float64(int32(1)<<chunkDegree))),
			Y: int32(math.Floor(float64(camera.Position().Y()) / float64(int32(1)<<chunkDegree))),
			Z: int32(math.Floor(float64(camera.Position().Z()) / float64(int32(1)<<chunkDegree))),
		}

		manager.GenerateChunks(curChunk)

		visible := manager.VisibleMeshes(curChunk)
		bufferManager.Update(visible, manager.ChunkUpdated())

		window.Clear(mgl32.Vec4{0.45, 0.65, 0.85, 1.0})

		shader.Use()
		cu := camera.CameraUniform()
		shader.SetMat4("view", toMat4(cu.MatView))
		shader.SetMat4("proj", toMat4(cu.MatProj))

		for _, vao := range vaos {
			vao.Bind()
			count := int32(bucketsPerBuffer * terrain.MaxIndices)
			gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
			vao.Unbind()
		}

		window.SwapBuffers()

		frameCount++
		if time.Since(lastStats) >= time.Second {
			fmt.Printf("fps: %d, chunks resident: %d, buckets reserved: %d/%d\n", frameCount, len(visible), bufferManager.Len(), bufferManager.Capacity())
			frameCount = 0
			lastStats = time.Now()
		}
	}
}

func toMat4(m [4][4]float32) mgl32.Mat4 {
	var out mgl32.Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] = m[col][row]
		}
	}
	return out
}

const vertexByteSize = 4 * 4 * 3

func buildVAO(vbo, ebo *openglhelper.BufferObject) *openglhelper.VertexArrayObject {
	vao := openglhelper.NewVAO()
	vao.Bind()
	vbo.Bind()
	ebo.Bind()
	vao.SetVertexAttribPointer(0, 4, gl.FLOAT, false, vertexByteSize, 0)
	vao.SetVertexAttribPointer(1, 4, gl.FLOAT, false, vertexByteSize, 16)
	vao.SetVertexAttribPointer(2, 4, gl.FLOAT, false, vertexByteSize, 32)
	vao.Unbind()
	return vao
}

// planetOracle is a demo FieldOracle: a solid sphere of the given radius,
// density 0 inside and 255 outside, centered at the world origin.
func planetOracle(radius float64) voxel.FieldOracleFunc {
	return func(x, y, z float64) uint8 {
		d := math.Sqrt(x*x+y*y+z*z) - radius
		if d < 0 {
			return 0
		}
		return 255
	}
}

const vertexShaderSource = `
#version 460 core
layout (location = 0) in vec4 aPosition;
layout (location = 1) in vec4 aNormal;
layout (location = 2) in vec4 aColor;
uniform mat4 view;
uniform mat4 proj;
out vec3 normal;
out vec4 color;
void main() {
    normal = aNormal.xyz;
    color = aColor;
    gl_Position = proj * view * vec4(aPosition.xyz, 1.0);
}
`

const fragmentShaderSource = `
#version 460 core
in vec3 normal;
in vec4 color;
out vec4 FragColor;
void main() {
    float light = max(dot(normalize(normal), normalize(vec3(0.4, 1.0, 0.3))), 0.15);
    FragColor = vec4(color.rgb * light, 1.0);
}
`
