package metadata

import "fmt"

// Model is a parsed model file made of named sub-meshes.
type Model struct {
	Name   string
	Meshes []*MeshData
}

// Mesh returns the sub-mesh named name.
func (m *Model) Mesh(name string) (*MeshData, error) {
	for _, mesh := range m.Meshes {
		if mesh.Name == name {
			return mesh, nil
		}
	}
	return nil, fmt.Errorf("model %q has no mesh %q", m.Name, name)
}

func (m *Model) MeshNames() []string {
	names := make([]string, 0, len(m.Meshes))
	for _, mesh := range m.Meshes {
		names = append(names, mesh.Name)
	}
	return names
}
