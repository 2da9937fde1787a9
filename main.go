package main

import (
	"flag"
	"log"

	"github.com/decker502/blockmap/pkg/app"
	"github.com/decker502/blockmap/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	configPath = flag.String("config", "", "编辑器配置文件（默认使用内置 data/editor.yaml）")
	mapFile    = flag.String("map", "", "启动时载入并保存到的地图文件（.json / .yaml）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	editorApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		MapFile:    *mapFile,
	})
	if err != nil {
		log.Fatalf("编辑器初始化失败: %v", err)
	}

	runErr := ebiten.RunGame(editorApp)
	// 退出前保存未保存的修改
	if err := editorApp.Close(); err != nil {
		log.Printf("保存失败: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
