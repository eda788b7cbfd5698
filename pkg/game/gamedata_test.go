package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraUniformPacksPositionAndMatrices(t *testing.T) {
	pos := mgl32.Vec3{1, 2, 3}
	view := mgl32.Ident4()
	proj := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 1000)

	cu := NewCameraUniform(pos, view, proj)

	assert.Equal(t, [4]float32{1, 2, 3, 1}, cu.Position)
	assert.Equal(t, float32(1), cu.MatView[0][0])
	assert.Equal(t, float32(1), cu.MatView[1][1])
}

func TestLightToLightUniformPadsVec3ToVec4(t *testing.T) {
	l := Light{
		Position:  mgl32.Vec3{0, 10, 0},
		Color:     mgl32.Vec3{1, 1, 1},
		Direction: mgl32.Vec3{0, -1, 0},
	}
	u := l.ToLightUniform()
	assert.Equal(t, [4]float32{0, 10, 0, 0}, u.Position)
	assert.Equal(t, [4]float32{0, -1, 0, 0}, u.Direction)
}
