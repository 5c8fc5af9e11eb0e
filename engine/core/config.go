package core

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

type WindowConfig struct {
	Title  string `toml:"title"`
	X      int    `toml:"x"`
	Y      int    `toml:"y"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type CameraConfig struct {
	Position         [3]float32 `toml:"position"`
	FOVDegrees       float32    `toml:"fov_degrees"`
	Near             float32    `toml:"near"`
	Far              float32    `toml:"far"`
	MoveSpeed        float32    `toml:"move_speed"`
	RotationSpeed    float32    `toml:"rotation_speed"`
	MouseSensitivity float32    `toml:"mouse_sensitivity"`
}

type SceneConfig struct {
	Terrain        string     `toml:"terrain"`
	Helicopter     string     `toml:"helicopter"`
	Helicopters    int        `toml:"helicopters"`
	TimeOffset     float64    `toml:"time_offset"`
	Altitude       float32    `toml:"altitude"`
	MainRotorSpeed float32    `toml:"main_rotor_speed"`
	TailRotorSpeed float32    `toml:"tail_rotor_speed"`
	ClearColor     [4]float32 `toml:"clear_color"`
}

type ShadersConfig struct {
	Vertex    string `toml:"vertex"`
	Fragment  string `toml:"fragment"`
	HotReload bool   `toml:"hot_reload"`
}

type AssetsConfig struct {
	BasePath string `toml:"base_path"`
	Watch    bool   `toml:"watch"`
}

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Log     LogConfig     `toml:"log"`
	Camera  CameraConfig  `toml:"camera"`
	Scene   SceneConfig   `toml:"scene"`
	Shaders ShadersConfig `toml:"shaders"`
	Assets  AssetsConfig  `toml:"assets"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Skyhook",
			X:      100,
			Y:      100,
			Width:  800,
			Height: 600,
		},
		Log: LogConfig{Level: "info"},
		Camera: CameraConfig{
			Position:         [3]float32{0, 20, 80},
			FOVDegrees:       60,
			Near:             1,
			Far:              1000,
			MoveSpeed:        30,
			RotationSpeed:    1.5,
			MouseSensitivity: 0.005,
		},
		Scene: SceneConfig{
			Terrain:        "models/lunarsurface.obj",
			Helicopter:     "models/helicopter.obj",
			Helicopters:    5,
			TimeOffset:     1.3,
			Altitude:       12,
			MainRotorSpeed: 12,
			TailRotorSpeed: 24,
			ClearColor:     [4]float32{0.163, 0.163, 0.163, 1},
		},
		Shaders: ShadersConfig{
			Vertex:    "shaders/simple.vert",
			Fragment:  "shaders/simple.frag",
			HotReload: true,
		},
		Assets: AssetsConfig{
			BasePath: "assets",
			Watch:    true,
		},
	}
}

// LoadConfig reads a TOML file over the defaults. A missing file yields the
// defaults, unknown keys and malformed TOML are errors.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		LogInfo("config file %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip planes near=%v far=%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Scene.Helicopters < 0 {
		return fmt.Errorf("%w: negative helicopter count", ErrInvalidConfig)
	}
	return nil
}

// Tuning holds the camera parameters that can change while running.
type Tuning struct {
	MoveSpeed        float32
	RotationSpeed    float32
	MouseSensitivity float32
}

func (c *Config) Tuning() Tuning {
	return Tuning{
		MoveSpeed:        c.Camera.MoveSpeed,
		RotationSpeed:    c.Camera.RotationSpeed,
		MouseSensitivity: c.Camera.MouseSensitivity,
	}
}

// TuningHolder shares the current Tuning between the config watcher and the
// frame loop.
type TuningHolder struct {
	mu     sync.RWMutex
	tuning Tuning
}

func NewTuningHolder(t Tuning) *TuningHolder {
	return &TuningHolder{tuning: t}
}

func (h *TuningHolder) Load() Tuning {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tuning
}

func (h *TuningHolder) Store(t Tuning) {
	h.mu.Lock()
	h.tuning = t
	h.mu.Unlock()
}

// ConfigWatcher reloads the config file whenever it is written and
// publishes the new tuning block.
type ConfigWatcher struct {
	path    string
	holder  *TuningHolder
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewConfigWatcher(path string, holder *TuningHolder) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// watch the directory, editors often replace the file instead of writing it
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}
	return &ConfigWatcher{
		path:    abs,
		holder:  holder,
		watcher: watcher,
		done:    make(chan struct{}),
	}, nil
}

func (cw *ConfigWatcher) Start() {
	cw.wg.Add(1)
	go func() {
		defer cw.wg.Done()
		for {
			select {
			case event, ok := <-cw.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != cw.path {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					cw.reload()
				}
			case err, ok := <-cw.watcher.Errors:
				if !ok {
					return
				}
				LogError("config watcher error: %s", err)
			case <-cw.done:
				return
			}
		}
	}()
}

func (cw *ConfigWatcher) reload() {
	cfg, err := LoadConfig(cw.path)
	if err != nil {
		LogWarn("keeping previous tuning: %s", err)
		return
	}
	cw.holder.Store(cfg.Tuning())
	LogInfo("reloaded tuning from %s", cw.path)
}

func (cw *ConfigWatcher) Close() error {
	close(cw.done)
	err := cw.watcher.Close()
	cw.wg.Wait()
	return err
}
