package systems

import (
	"fmt"
	"path"
	"sync"

	"github.com/spaghettifunk/skyhook/engine/assets"
	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/renderer"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

// ShaderSystem builds the active program from asset files and rebuilds it
// when one of them changes on disk. Changes arrive on the watcher goroutine
// and are only recorded; ReloadPending does the work on the render thread.
type ShaderSystem struct {
	assets   *assets.AssetManager
	renderer *renderer.Renderer
	events   *core.EventBus

	name  string
	files []string

	mu      sync.Mutex
	pending bool
}

func NewShaderSystem(am *assets.AssetManager, r *renderer.Renderer, events *core.EventBus) (*ShaderSystem, error) {
	if am == nil || r == nil {
		return nil, fmt.Errorf("func NewShaderSystem - asset manager and renderer are required")
	}
	ss := &ShaderSystem{
		assets:   am,
		renderer: r,
		events:   events,
	}
	if events != nil {
		events.Register(core.EVENT_CODE_SHADER_CHANGED, ss, ss.onShaderChanged)
	}
	return ss, nil
}

// Load builds the program name from the given stage files, relative to the
// asset directory, and makes it active.
func (ss *ShaderSystem) Load(name string, files ...string) error {
	config, err := ss.config(name, files)
	if err != nil {
		return err
	}
	if err := ss.renderer.SetShader(config); err != nil {
		return err
	}
	ss.mu.Lock()
	ss.name = name
	ss.files = append([]string(nil), files...)
	ss.mu.Unlock()
	core.LogInfo("shader %s loaded from %v", name, files)
	return nil
}

func (ss *ShaderSystem) config(name string, files []string) (*metadata.ShaderConfig, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("shader %s has no stages", name)
	}
	config := &metadata.ShaderConfig{Name: name}
	for _, f := range files {
		res, err := ss.assets.LoadAsset(f, nil)
		if err != nil {
			return nil, err
		}
		stage, ok := res.Data.(*metadata.ShaderStageConfig)
		if !ok {
			return nil, fmt.Errorf("%s is not a shader source", f)
		}
		config.Stages = append(config.Stages, *stage)
	}
	return config, nil
}

func (ss *ShaderSystem) onShaderChanged(ctx core.EventContext) bool {
	e, ok := ctx.Data.(*core.FileEvent)
	if !ok {
		return false
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	for _, f := range ss.files {
		if path.Clean(f) == path.Clean(e.Path) {
			ss.pending = true
			return true
		}
	}
	return false
}

// ReloadPending rebuilds the active program if one of its files changed.
// A failed rebuild is logged and the previous program stays in use.
func (ss *ShaderSystem) ReloadPending() bool {
	ss.mu.Lock()
	pending := ss.pending
	ss.pending = false
	name, files := ss.name, ss.files
	ss.mu.Unlock()
	if !pending || name == "" {
		return false
	}

	config, err := ss.config(name, files)
	if err == nil {
		err = ss.renderer.SetShader(config)
	}
	if err != nil {
		core.LogError("shader reload failed, keeping the previous program: %s", err)
		return false
	}
	core.LogInfo("shader %s reloaded", name)
	return true
}

func (ss *ShaderSystem) Active() *metadata.Shader {
	return ss.renderer.Shader()
}

func (ss *ShaderSystem) Shutdown() error {
	if ss.events != nil {
		ss.events.Unregister(core.EVENT_CODE_SHADER_CHANGED, ss)
	}
	return nil
}
