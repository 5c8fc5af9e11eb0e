package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief a 4x4 matrix, typically used to represent object transformations. */
type Mat4 struct {
	/** @brief The matrix elements, row-major with translation in 12..14 */
	Data [16]float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief Represents the local transform parameters of a scene node.
 * The properties of this should not be edited directly, but done via
 * the functions in transform.go to ensure proper matrix generation.
 */
type Transform struct {
	/** @brief The translation relative to the parent. */
	Position Vec3
	/** @brief Angles in radians around each axis. */
	Rotation Vec3
	/** @brief The pivot; its components act as the per-axis rotation axis. */
	ReferencePoint Vec3
	/** @brief The scale relative to the parent. */
	Scale Vec3
	/**
	 * @brief Indicates if any of the parameters have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	IsDirty bool
	/** @brief The cached local transformation matrix. */
	Local Mat4
}
