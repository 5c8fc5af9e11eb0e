package systems

import (
	"github.com/spaghettifunk/skyhook/engine/assets"
	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/renderer"
)

type SystemManager struct {
	geometrySystem *GeometrySystem
	shaderSystem   *ShaderSystem
}

func NewSystemManager(r *renderer.Renderer, am *assets.AssetManager, events *core.EventBus) (*SystemManager, error) {
	gs, err := NewGeometrySystem(r)
	if err != nil {
		return nil, err
	}
	ss, err := NewShaderSystem(am, r, events)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		geometrySystem: gs,
		shaderSystem:   ss,
	}, nil
}

func (sm *SystemManager) Geometry() *GeometrySystem {
	return sm.geometrySystem
}

func (sm *SystemManager) Shaders() *ShaderSystem {
	return sm.shaderSystem
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.shaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.geometrySystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
