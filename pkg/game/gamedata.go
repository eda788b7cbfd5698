// Package game holds the host-facing state that crosses the boundary into
// GPU uniform buffers each frame: camera and light, packed into the exact
// byte layouts the terrain shader expects.
package game

import "github.com/go-gl/mathgl/mgl32"

// CameraUniform is the GPU-facing camera uniform block: a vec4 position
// (the 4th component is padding, keeping the struct 16-byte aligned) plus
// the view and projection matrices.
type CameraUniform struct {
	Position [4]float32
	MatView  [4][4]float32
	MatProj  [4][4]float32
}

// Light describes a single directional light in host-friendly form.
type Light struct {
	Position               mgl32.Vec3
	Color                  mgl32.Vec3
	AmbientColorStrength   mgl32.Vec4
	DiffuseColorStrength   mgl32.Vec4
	SpecularColorStrength  mgl32.Vec4
	Direction              mgl32.Vec3
}

// LightUniform is the GPU-facing light uniform block, matching Light's
// fields but with every vector padded to vec4 for std140 layout.
type LightUniform struct {
	Position              [4]float32
	Color                 [4]float32
	AmbientColorStrength  [4]float32
	DiffuseColorStrength  [4]float32
	SpecularColorStrength [4]float32
	Direction             [4]float32
}

// ToLightUniform packs Light into its GPU uniform layout.
func (l Light) ToLightUniform() LightUniform {
	return LightUniform{
		Position:              [4]float32{l.Position.X(), l.Position.Y(), l.Position.Z(), 0},
		Color:                 [4]float32{l.Color.X(), l.Color.Y(), l.Color.Z(), 0},
		AmbientColorStrength:  l.AmbientColorStrength,
		DiffuseColorStrength:  l.DiffuseColorStrength,
		SpecularColorStrength: l.SpecularColorStrength,
		Direction:             [4]float32{l.Direction.X(), l.Direction.Y(), l.Direction.Z(), 0},
	}
}

// GameData is every piece of frame state the render passes need: the
// current camera uniform and light, kept here so TerrainPass.update-style
// code only ever reads from one struct instead of reaching into the camera
// and scene state directly.
type GameData struct {
	Camera CameraUniform
	Light  Light
}

// NewCameraUniform packs a view and projection matrix plus eye position
// into the GPU-facing layout.
func NewCameraUniform(position mgl32.Vec3, view, proj mgl32.Mat4) CameraUniform {
	return CameraUniform{
		Position: [4]float32{position.X(), position.Y(), position.Z(), 1},
		MatView:  mat4ToArray(view),
		MatProj:  mat4ToArray(proj),
	}
}

func mat4ToArray(m mgl32.Mat4) [4][4]float32 {
	var out [4][4]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col][row] = m[col*4+row]
		}
	}
	return out
}
