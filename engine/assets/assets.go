package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/skyhook/engine/assets/loaders"
	"github.com/spaghettifunk/skyhook/engine/core"
	"github.com/spaghettifunk/skyhook/engine/renderer/metadata"
)

var ErrAssetNotFound = errors.New("asset not found")

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes every file under a base directory and loads them
// through the loader registered for their type. When watching, changed
// shader sources are announced with EVENT_CODE_SHADER_CHANGED.
type AssetManager struct {
	basePath string
	assets   map[string]AssetInfo
	loaders  map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	events   *core.EventBus
	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

// NewAssetManager indexes basePath. events can be nil when nothing listens
// for changes.
func NewAssetManager(basePath string, events *core.EventBus) (*AssetManager, error) {
	am := &AssetManager{
		basePath: filepath.Clean(basePath),
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		events:   events,
	}

	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeModel, &loaders.ModelLoader{})
	am.registerLoader(metadata.ResourceTypeText, &loaders.TextLoader{})

	if err := am.watchRecursive(am.basePath, false); err != nil {
		return nil, fmt.Errorf("failed to index %s: %w", basePath, err)
	}
	return am, nil
}

// Watch starts following file changes under the base directory until Close.
func (am *AssetManager) Watch() error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	if am.fsnotify != nil {
		return nil
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	am.fsnotify = fsWatch
	am.done = make(chan struct{})
	am.stopped = make(chan struct{})

	if err := am.watchRecursive(am.basePath, false); err != nil {
		fsWatch.Close()
		am.fsnotify = nil
		return err
	}
	go am.start()
	return nil
}

func (am *AssetManager) Close() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	if am.fsnotify == nil {
		return nil
	}
	close(am.done)
	<-am.stopped
	return nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Path resolves an index name to the file on disk.
func (am *AssetManager) Path(name string) string {
	return filepath.Join(am.basePath, filepath.FromSlash(name))
}

// Assets lists the indexed names, sorted.
func (am *AssetManager) Assets() []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	names := make([]string, 0, len(am.assets))
	for name := range am.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (am *AssetManager) Info(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.ToSlash(name)]
	return info, ok
}

// LoadAsset loads the indexed file name, relative to the base directory.
func (am *AssetManager) LoadAsset(name string, params interface{}) (*metadata.Resource, error) {
	name = filepath.ToSlash(filepath.Clean(name))

	am.mutex.Lock()
	asset, exists := am.assets[name]
	if exists {
		// Update the loaded time
		asset.LastLoaded = time.Now()
		am.assets[name] = asset
	}
	am.mutex.Unlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}

	res, err := loader.Load(am.Path(name), params)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	res.Type = asset.Type
	if res.Name == "" {
		res.Name = name
	}
	return res, nil
}

func (am *AssetManager) UnloadAsset(res *metadata.Resource) error {
	if res == nil {
		return nil
	}
	loader, ok := am.loaders[res.Type]
	if !ok {
		return nil
	}
	return loader.Unload(res)
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleWatchEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) handleWatchEvent(e fsnotify.Event) {
	s, err := os.Stat(e.Name)
	if err == nil && s != nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(e.Name, false); err != nil {
				core.LogWarn("failed to watch %s: %s", e.Name, err)
			}
		}
		return
	}

	name, err := am.relative(e.Name)
	if err != nil {
		return
	}

	// Handle create or modify events
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		if t := am.handleFileEvent(name); t == metadata.ResourceTypeShader {
			am.notifyShaderChanged(name)
		}
	}
	// Can't stat a deleted entry, so drop it from both the index and the
	// watch list and ignore the error if it was a plain file.
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		am.removeAsset(name)
		_ = am.fsnotify.Remove(e.Name)
	}
}

func (am *AssetManager) notifyShaderChanged(name string) {
	if am.events == nil {
		return
	}
	core.LogDebug("shader source changed: %s", name)
	am.events.Fire(core.EventContext{
		Type: core.EVENT_CODE_SHADER_CHANGED,
		Data: &core.FileEvent{Path: name},
	})
}

// watchRecursive indexes every file under path and, once watching, adds (or
// removes) every directory to the watch list.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if am.fsnotify == nil {
				return nil
			}
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		name, err := am.relative(walkPath)
		if err != nil {
			return err
		}
		am.handleFileEvent(name)
		return nil
	})
}

func (am *AssetManager) relative(path string) (string, error) {
	rel, err := filepath.Rel(am.basePath, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(name string) metadata.ResourceType {
	assetType := determineAssetType(name)
	if assetType == metadata.ResourceTypeNone {
		return assetType
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[name] = AssetInfo{
		Path:       name,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	return assetType
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(name string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, name)
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".vert", ".frag", ".glsl":
		return metadata.ResourceTypeShader
	case ".obj", ".gltf", ".glb":
		return metadata.ResourceTypeModel
	case ".toml":
		return metadata.ResourceTypeConfig
	case ".txt":
		return metadata.ResourceTypeText
	default:
		return metadata.ResourceTypeNone
	}
}
