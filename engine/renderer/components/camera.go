package components

import (
	"github.com/spaghettifunk/skyhook/engine/math"
)

/**
 * @brief Represents a perspective camera. The view and projection matrices
 * are rebuilt lazily when position, rotation or lens parameters change.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/**
	 * @brief The rotation of this camera using Euler angles (pitch, yaw, roll).
	 * NOTE: Do not set this directly, use SetEulerRotation() instead.
	 */
	EulerRotation math.Vec3
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/** @brief The view matrix of this camera, use GetView(). */
	ViewMatrix math.Mat4

	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	projectionDirty bool
	projection      math.Mat4
}

// Pitch is clamped to 89 degrees to avoid gimbal lock.
const pitchLimit = float32(1.55334306)

func NewCamera(fovRadians, aspect, near, far float32) *Camera {
	camera := &Camera{
		FOV:    fovRadians,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.EulerRotation = math.NewVec3Zero()
	c.Position = math.NewVec3Zero()
	c.IsDirty = false
	c.ViewMatrix = math.NewMat4Identity()
	c.projectionDirty = true
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.IsDirty = true
}

func (c *Camera) GetEulerRotation() math.Vec3 {
	return c.EulerRotation
}

func (c *Camera) SetEulerRotation(rotation math.Vec3) {
	c.EulerRotation = rotation
	c.EulerRotation.X = math.Clamp(c.EulerRotation.X, -pitchLimit, pitchLimit)
	c.IsDirty = true
}

// SetViewport updates the aspect ratio after a resize. Zero sizes, as
// reported for minimized windows, are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
	c.projectionDirty = true
}

func (c *Camera) GetView() math.Mat4 {
	if c.IsDirty {
		rotation := math.NewMat4EulerXYZ(c.EulerRotation.X, c.EulerRotation.Y, c.EulerRotation.Z)
		translation := math.NewMat4Translation(c.Position)

		c.ViewMatrix = rotation.Mul(translation)
		c.ViewMatrix = c.ViewMatrix.Inverse()

		c.IsDirty = false
	}
	return c.ViewMatrix
}

func (c *Camera) GetProjection() math.Mat4 {
	if c.projectionDirty {
		c.projection = math.NewMat4Perspective(c.FOV, c.Aspect, c.Near, c.Far)
		c.projectionDirty = false
	}
	return c.projection
}

// ViewProjection returns view x projection for row vectors.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.GetView().Mul(c.GetProjection())
}

// Translate moves the camera by a world space offset.
func (c *Camera) Translate(offset math.Vec3) {
	c.Position = c.Position.Add(offset)
	c.IsDirty = true
}

func (c *Camera) Yaw(amount float32) {
	c.EulerRotation.Y = math.WrapAngle(c.EulerRotation.Y + amount)
	c.IsDirty = true
}

func (c *Camera) Pitch(amount float32) {
	c.EulerRotation.X += amount
	c.EulerRotation.X = math.Clamp(c.EulerRotation.X, -pitchLimit, pitchLimit)
	c.IsDirty = true
}
