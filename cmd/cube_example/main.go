// Command cube_example is a minimal openglhelper smoke test: a window, one
// shader, one cube mesh, spinning in place. It exercises the device layer
// (internal/openglhelper) independent of the terrain pipeline.
package main

import (
	"log"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"openglhelper"
)

func init() {
	runtime.LockOSThread()
}

const vertexShader = `
#version 460 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoords;
uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;
out vec3 normal;
void main() {
    normal = mat3(model) * aNormal;
    gl_Position = proj * view * model * vec4(aPos, 1.0);
}
`

const fragmentShader = `
#version 460 core
in vec3 normal;
out vec4 FragColor;
void main() {
    float light = max(dot(normalize(normal), normalize(vec3(0.4, 1.0, 0.3))), 0.1);
    FragColor = vec4(vec3(light), 1.0);
}
`

func main() {
	window, err := openglhelper.NewWindow(800, 600, "voxelstream - cube example", true)
	if err != nil {
		log.Fatalf("failed to create window: %v", err)
	}
	defer window.Close()

	shader, err := openglhelper.NewShader(vertexShader, fragmentShader)
	if err != nil {
		log.Fatalf("failed to compile shader: %v", err)
	}
	defer shader.Delete()

	cube := openglhelper.NewCube(shader)
	defer cube.Delete()

	proj := mgl32.Perspective(mgl32.DegToRad(60), 800.0/600.0, 0.1, 100.0)
	view := mgl32.LookAtV(mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	start := time.Now()
	for !window.ShouldClose() {
		window.PollEvents()
		window.Clear(mgl32.Vec4{0.1, 0.1, 0.15, 1.0})

		angle := float32(time.Since(start).Seconds())
		model := mgl32.HomogRotate3DY(angle).Mul4(mgl32.HomogRotate3DX(angle * 0.37))

		shader.Use()
		shader.SetMat4("model", model)
		shader.SetMat4("view", view)
		shader.SetMat4("proj", proj)
		cube.Draw()

		window.SwapBuffers()
	}
}
