package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/decker502/blockmap/pkg/embedded"
	"github.com/decker502/blockmap/pkg/history"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath 嵌入的默认配置路径
	DefaultConfigPath = "data/editor.yaml"

	// DefaultWindowWidth 默认窗口宽度
	DefaultWindowWidth = 1280
	// DefaultWindowHeight 默认窗口高度
	DefaultWindowHeight = 800

	// DefaultAutosaveSlot 默认自动存档槽
	DefaultAutosaveSlot = "autosave"
)

// 视口相机类型
const (
	KindPerspective  = "perspective"
	KindOrthographic = "orthographic"
)

// ErrInvalidViewport 视口配置不合法
var ErrInvalidViewport = errors.New("invalid viewport")

// EditorConfig 编辑器配置
//
// 配置文件位置: data/editor.yaml
type EditorConfig struct {
	Window    WindowConfig     `yaml:"window"`
	History   HistoryConfig    `yaml:"history"`
	Grid      GridConfig       `yaml:"grid"`
	Viewports []ViewportConfig `yaml:"viewports"`
	Autosave  AutosaveConfig   `yaml:"autosave"`

	// MapFile 启动时载入的地图文件（JSON 或 YAML），为空则尝试自动存档
	MapFile string `yaml:"mapFile"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// HistoryConfig 操作历史配置
type HistoryConfig struct {
	// Capacity 最多保留的操作数，<= 0 使用 history.DefaultCapacity
	Capacity int `yaml:"capacity"`
}

// GridConfig 网格配置
type GridConfig struct {
	Size int `yaml:"size"`
}

// RectConfig 视口矩形，窗口比例坐标，原点在左下
type RectConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ViewportConfig 单个视口配置
//
// Position 与 Target 相对于场景中心（editor.CenterOffset）。
type ViewportConfig struct {
	Name string     `yaml:"name"`
	Kind string     `yaml:"kind"`
	Rect RectConfig `yaml:"rect"`

	// FOV 透视相机垂直视角（度）
	FOV float64 `yaml:"fov"`
	// Height 正交相机半高（世界单位）
	Height float64 `yaml:"height"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`

	Position [3]float64 `yaml:"position,flow"`
	Target   [3]float64 `yaml:"target,flow"`
	// Up 相机上方向，全零时使用 +Y
	Up [3]float64 `yaml:"up,flow"`
}

// AutosaveConfig 自动存档配置
type AutosaveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Slot    string `yaml:"slot"`
}

// Default 返回内置默认配置：上半屏透视主视图，下方两个正交侧视图
func Default() *EditorConfig {
	return &EditorConfig{
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  "Block Map Editor",
		},
		History: HistoryConfig{Capacity: history.DefaultCapacity},
		Grid:    GridConfig{Size: 10},
		Viewports: []ViewportConfig{
			{
				Name:     "main",
				Kind:     KindPerspective,
				Rect:     RectConfig{X: 0, Y: 0.5, Width: 1, Height: 0.5},
				FOV:      75,
				Near:     0.1,
				Far:      1000,
				Position: [3]float64{0, 2, 5},
			},
			{
				Name:     "front",
				Kind:     KindOrthographic,
				Rect:     RectConfig{X: 0, Y: 0, Width: 0.5, Height: 0.5},
				Height:   5,
				Near:     0.1,
				Far:      1000,
				Position: [3]float64{0, 0, 10},
			},
			{
				Name:     "side",
				Kind:     KindOrthographic,
				Rect:     RectConfig{X: 0.5, Y: 0, Width: 0.5, Height: 0.5},
				Height:   5,
				Near:     0.1,
				Far:      1000,
				Position: [3]float64{10, 0, 0},
			},
		},
		Autosave: AutosaveConfig{Enabled: true, Slot: DefaultAutosaveSlot},
	}
}

// Load 从文件加载编辑器配置
//
// 文件中缺省的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *EditorConfig: 合并默认值并通过校验的配置
//   - error: 读取、解析或校验失败时返回错误
func Load(path string) (*EditorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read editor config: %w", err)
	}
	return Parse(data)
}

// LoadEmbedded 从嵌入资源加载编辑器配置，调用前需先 embedded.Init()
func LoadEmbedded(path string) (*EditorConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded editor config: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 配置
func Parse(data []byte) (*EditorConfig, error) {
	cfg := Default()
	// 给出 viewports 时整体替换默认视口，每项字段都需写全
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse editor config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid editor config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 窗口尺寸为正
//   - 至少一个视口，名称唯一，矩形落在 [0,1] 内且面积为正
//   - 相机类型合法，near < far，透视 FOV 在 (0,180)，正交 Height 为正
//   - 启用自动存档时存档槽非空
func (c *EditorConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Grid.Size < 0 {
		return fmt.Errorf("grid size must not be negative: %d", c.Grid.Size)
	}
	if len(c.Viewports) == 0 {
		return fmt.Errorf("no viewports configured: %w", ErrInvalidViewport)
	}

	names := make(map[string]bool, len(c.Viewports))
	for i, v := range c.Viewports {
		if err := v.validate(); err != nil {
			return fmt.Errorf("viewport %d (%q): %w", i, v.Name, err)
		}
		if names[v.Name] {
			return fmt.Errorf("duplicate viewport name %q: %w", v.Name, ErrInvalidViewport)
		}
		names[v.Name] = true
	}

	if c.Autosave.Enabled && c.Autosave.Slot == "" {
		return fmt.Errorf("autosave enabled without a slot")
	}
	return nil
}

func (v ViewportConfig) validate() error {
	if v.Name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidViewport)
	}
	r := v.Rect
	if r.Width <= 0 || r.Height <= 0 || r.X < 0 || r.Y < 0 || r.X+r.Width > 1 || r.Y+r.Height > 1 {
		return fmt.Errorf("rect %+v outside the window: %w", r, ErrInvalidViewport)
	}
	if v.Near <= 0 || v.Far <= v.Near {
		return fmt.Errorf("near/far %v/%v: %w", v.Near, v.Far, ErrInvalidViewport)
	}
	switch v.Kind {
	case KindPerspective:
		if v.FOV <= 0 || v.FOV >= 180 {
			return fmt.Errorf("fov %v: %w", v.FOV, ErrInvalidViewport)
		}
	case KindOrthographic:
		if v.Height <= 0 {
			return fmt.Errorf("height %v: %w", v.Height, ErrInvalidViewport)
		}
	default:
		return fmt.Errorf("unknown kind %q: %w", v.Kind, ErrInvalidViewport)
	}
	if v.Position == v.Target {
		return fmt.Errorf("position equals target: %w", ErrInvalidViewport)
	}
	return nil
}
