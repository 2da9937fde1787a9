// Package app 提供编辑器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/blockmap/pkg/config"
	"github.com/decker502/blockmap/pkg/embedded"
	"github.com/decker502/blockmap/pkg/input"
	"github.com/decker502/blockmap/pkg/mapdata"
	"github.com/decker502/blockmap/pkg/render"
	"github.com/decker502/blockmap/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名
const AppName = "blockmap"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 编辑器配置文件路径，为空则使用嵌入的 data/editor.yaml
	ConfigPath string
	// MapFile 覆盖配置中的 mapFile
	MapFile string
}

// App 是编辑器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	session  *Session
	source   *input.EbitenSource
	router   *input.Router
	renderer *render.Renderer
	verbose  bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	windowWidth              int
	windowHeight             int
}

// NewApp 创建并初始化编辑器应用
//
// 未指定 ConfigPath 时需要先调用 embedded.Init()，否则使用内置默认配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	editorConfig, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	if cfg.MapFile != "" {
		editorConfig.MapFile = cfg.MapFile
	}

	var store *mapdata.Store
	if editorConfig.Autosave.Enabled {
		store = mapdata.OpenStore(AppName)
	}

	session, err := NewSession(editorConfig, store)
	if err != nil {
		return nil, fmt.Errorf("会话创建失败: %w", err)
	}
	if err := session.Load(); err != nil {
		// 地图损坏不阻止启动，从空地图开始
		log.Printf("[App] Map load failed: %v", err)
	}

	if !utils.IsMobile() {
		ebiten.SetWindowSize(editorConfig.Window.Width, editorConfig.Window.Height)
		ebiten.SetWindowTitle(editorConfig.Window.Title)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	source := input.NewEbitenSource(editorConfig.Window.Width, editorConfig.Window.Height)
	log.Printf("[App] Started: %d viewports, map=%q", len(session.Viewports()), editorConfig.MapFile)

	return &App{
		session:      session,
		source:       source,
		router:       input.NewRouter(source, session.Keys(), session.Viewports()...),
		renderer:     render.NewRenderer(),
		verbose:      cfg.Verbose,
		windowWidth:  editorConfig.Window.Width,
		windowHeight: editorConfig.Window.Height,
	}, nil
}

func loadConfig(path string) (*config.EditorConfig, error) {
	switch {
	case path != "":
		log.Printf("[Config] 加载编辑器配置: %s", path)
		return config.Load(path)
	case embedded.IsInitialized():
		return config.LoadEmbedded(config.DefaultConfigPath)
	}
	log.Printf("[Config] 使用内置默认配置")
	return config.Default(), nil
}

// Update 更新编辑器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.windowWidth, a.windowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.router.Update()
	a.session.Tick()
	return nil
}

// Draw 绘制所有视口与状态栏
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	ed := a.session.Editor()
	for _, vp := range a.session.Viewports() {
		a.renderer.DrawViewport(screen, vp, ed)
	}
	ebitenutil.DebugPrintAt(screen, a.session.Status(), 8, screen.Bounds().Dy()-20)
}

// Layout 返回实际窗口尺寸，视口随窗口缩放重新计算像素矩形与相机宽高比
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.source.SetSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Session 返回编辑会话
func (a *App) Session() *Session {
	return a.session
}

// Close 退出前保存未保存的修改
func (a *App) Close() error {
	if !a.session.Dirty() {
		return nil
	}
	return a.session.Save()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
