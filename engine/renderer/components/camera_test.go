package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
)

func newController() *CameraController {
	cam := NewCamera(math.DegToRad(60), 4.0/3.0, 0.1, 100)
	return NewCameraController(cam, core.Tuning{MoveSpeed: 1, RotationSpeed: 2, MouseSensitivity: 0.5})
}

func TestControllerHoldWForOneSecond(t *testing.T) {
	c := newController()
	c.Apply(core.InputSnapshot{Keys: []core.KeyCode{core.KEY_W}}, 1.0)

	assert.Equal(t, math.NewVec3(0, 0, -1), c.Camera.GetPosition())
	assert.Equal(t, float32(1), c.Camera.GetPosition().Length())
}

func TestControllerAccumulatesAxes(t *testing.T) {
	c := newController()
	c.Tuning.MoveSpeed = 4
	keys := []core.KeyCode{core.KEY_SPACE, core.KEY_A, core.KEY_D, core.KEY_S}
	c.Apply(core.InputSnapshot{Keys: keys}, 0.5)

	// A and D cancel out
	assert.Equal(t, math.NewVec3(0, 2, 2), c.Camera.GetPosition())
}

func TestControllerTurns(t *testing.T) {
	c := newController()
	c.Apply(core.InputSnapshot{Keys: []core.KeyCode{core.KEY_LEFT, core.KEY_UP}}, 0.25)
	assert.Equal(t, math.NewVec3(0.5, 0.5, 0), c.Camera.GetEulerRotation())

	c.Apply(core.InputSnapshot{PointerDX: 2, PointerDY: -1}, 0.25)
	assert.Equal(t, math.NewVec3(1, -0.5, 0), c.Camera.GetEulerRotation())
}

func TestControllerIgnoresUnboundKeys(t *testing.T) {
	c := newController()
	c.Apply(core.InputSnapshot{Keys: []core.KeyCode{core.KEY_ESCAPE, core.KEY_Q}}, 1.0)
	assert.Equal(t, math.NewVec3Zero(), c.Camera.GetPosition())
	assert.False(t, c.Camera.IsDirty)
}

func TestCameraPitchIsClamped(t *testing.T) {
	cam := NewCamera(1, 1, 0.1, 100)
	cam.Pitch(10)
	assert.Equal(t, pitchLimit, cam.GetEulerRotation().X)
	cam.SetEulerRotation(math.NewVec3(-10, 0, 0))
	assert.Equal(t, -pitchLimit, cam.GetEulerRotation().X)
}

func TestCameraYawWraps(t *testing.T) {
	cam := NewCamera(1, 1, 0.1, 100)
	for i := 0; i < 8; i++ {
		cam.Yaw(1)
	}
	y := cam.GetEulerRotation().Y
	assert.GreaterOrEqual(t, y, -math.K_PI)
	assert.Less(t, y, math.K_PI)
	assert.InDelta(t, 8-math.K_PI_2, y, 1e-4)
}

func TestCameraViewIsInverseOfPlacement(t *testing.T) {
	cam := NewCamera(1, 1, 0.1, 100)
	cam.SetPosition(math.NewVec3(3, 4, 5))

	p := math.NewVec3(3, 4, 5).Transform(cam.GetView())
	assert.True(t, p.Compare(math.NewVec3Zero(), 1e-6), "got %v", p)
}

func TestCameraViewport(t *testing.T) {
	cam := NewCamera(1, 1, 0.1, 100)
	cam.SetViewport(800, 400)
	assert.Equal(t, float32(2), cam.Aspect)

	proj := cam.GetProjection()
	cam.SetViewport(0, 0)
	assert.Equal(t, float32(2), cam.Aspect)
	assert.Equal(t, proj, cam.GetProjection())

	vp := cam.ViewProjection()
	assert.Equal(t, cam.GetView().Mul(proj), vp)
}
