package metadata

import (
	"fmt"

	"github.com/spaghettifunk/skyhook/engine/math"
)

// GeometryHandle refers to geometry resident on the GPU. Handles are only
// meaningful to the backend that created them.
type GeometryHandle uint32

/** @brief The handle of geometry that was never created. */
const InvalidGeometry GeometryHandle = 0

/**
 * @brief Represents a mesh on the CPU side, ready to be uploaded.
 * Colours and normals are optional; when present they hold one entry per position.
 */
type MeshData struct {
	/** @brief The name of the mesh inside its model. */
	Name string
	/** @brief Vertex positions. */
	Positions []math.Vec3
	/** @brief Vertex colours, RGBA. */
	Colors []math.Vec4
	/** @brief Vertex normals. */
	Normals []math.Vec3
	/** @brief Triangle list indices into Positions. */
	Indices []uint32
}

func (m *MeshData) IndexCount() int32 {
	return int32(len(m.Indices))
}

func (m *MeshData) Extents() math.Extents3D {
	return math.GeometryExtents(m.Positions)
}

// Validate checks the attribute counts and that every index is in range.
func (m *MeshData) Validate() error {
	vc := len(m.Positions)
	if vc == 0 {
		return fmt.Errorf("mesh %q has no vertices", m.Name)
	}
	if len(m.Colors) != 0 && len(m.Colors) != vc {
		return fmt.Errorf("mesh %q has %d colours for %d vertices", m.Name, len(m.Colors), vc)
	}
	if len(m.Normals) != 0 && len(m.Normals) != vc {
		return fmt.Errorf("mesh %q has %d normals for %d vertices", m.Name, len(m.Normals), vc)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q index count %d is not a multiple of 3", m.Name, len(m.Indices))
	}
	for _, i := range m.Indices {
		if int(i) >= vc {
			return fmt.Errorf("mesh %q index %d out of range", m.Name, i)
		}
	}
	return nil
}

// Fill sets missing colours to white and computes flat normals when none
// were provided.
func (m *MeshData) Fill() {
	if len(m.Colors) == 0 {
		m.Colors = make([]math.Vec4, len(m.Positions))
		for i := range m.Colors {
			m.Colors[i] = math.NewVec4One()
		}
	}
	if len(m.Normals) == 0 {
		m.Normals = math.GeometryGenerateNormals(m.Positions, m.Indices)
	}
}

/**
 * @brief Represents actual geometry in the world, as created by the renderer backend.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID GeometryHandle
	/** @brief The geometry name. */
	Name string
	/** @brief The number of indices to draw. */
	IndexCount int32
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
}
