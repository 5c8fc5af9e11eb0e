package components

import (
	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/math"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// MoveBinding translates the camera along a world axis while the key is held.
type MoveBinding struct {
	Axis Axis
	Sign float32
}

type TurnKind int

const (
	TurnYaw TurnKind = iota
	TurnPitch
)

// TurnBinding rotates the camera while the key is held.
type TurnBinding struct {
	Kind TurnKind
	Sign float32
}

// CameraController applies one frame of input to a camera.
type CameraController struct {
	Camera *Camera
	Tuning core.Tuning
	Move   map[core.KeyCode]MoveBinding
	Turn   map[core.KeyCode]TurnBinding
}

func DefaultMoveBindings() map[core.KeyCode]MoveBinding {
	return map[core.KeyCode]MoveBinding{
		core.KEY_W:      {Axis: AxisZ, Sign: -1},
		core.KEY_S:      {Axis: AxisZ, Sign: 1},
		core.KEY_A:      {Axis: AxisX, Sign: -1},
		core.KEY_D:      {Axis: AxisX, Sign: 1},
		core.KEY_SPACE:  {Axis: AxisY, Sign: 1},
		core.KEY_LSHIFT: {Axis: AxisY, Sign: -1},
	}
}

func DefaultTurnBindings() map[core.KeyCode]TurnBinding {
	return map[core.KeyCode]TurnBinding{
		core.KEY_LEFT:  {Kind: TurnYaw, Sign: 1},
		core.KEY_RIGHT: {Kind: TurnYaw, Sign: -1},
		core.KEY_UP:    {Kind: TurnPitch, Sign: 1},
		core.KEY_DOWN:  {Kind: TurnPitch, Sign: -1},
	}
}

func NewCameraController(camera *Camera, tuning core.Tuning) *CameraController {
	return &CameraController{
		Camera: camera,
		Tuning: tuning,
		Move:   DefaultMoveBindings(),
		Turn:   DefaultTurnBindings(),
	}
}

// Apply moves the camera by sign x speed x delta on the bound axis of every
// held key and turns it by the pointer motion.
func (c *CameraController) Apply(snapshot core.InputSnapshot, delta float32) {
	var offset [3]float32
	for _, key := range snapshot.Keys {
		if b, ok := c.Move[key]; ok {
			offset[b.Axis] += b.Sign * c.Tuning.MoveSpeed * delta
		}
		if b, ok := c.Turn[key]; ok {
			amount := b.Sign * c.Tuning.RotationSpeed * delta
			switch b.Kind {
			case TurnYaw:
				c.Camera.Yaw(amount)
			case TurnPitch:
				c.Camera.Pitch(amount)
			}
		}
	}
	if offset != [3]float32{} {
		c.Camera.Translate(math.NewVec3(offset[0], offset[1], offset[2]))
	}

	if snapshot.PointerDX != 0 {
		c.Camera.Yaw(-snapshot.PointerDX * c.Tuning.MouseSensitivity)
	}
	if snapshot.PointerDY != 0 {
		c.Camera.Pitch(-snapshot.PointerDY * c.Tuning.MouseSensitivity)
	}
}
