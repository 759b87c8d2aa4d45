// main.go
package main

import (
	"embed"
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/vwork-app/vwork-desktop/internal/config"
	"github.com/vwork-app/vwork-desktop/internal/logging"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
)

//go:embed all:frontend/dist
var assets embed.FS

//go:embed build/appicon.png
var appIcon []byte

var (
	showVersion = flag.Bool("version", false, "Show version")
)

// appVersion is set at build time via -ldflags "-X main.appVersion=x.y.z"
var appVersion = "dev"

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("VWork Desktop v%s\n", appVersion)
		return
	}

	logs := logging.NewBuffer(500)
	closeLog, _ := logging.Setup(appName, logs)
	defer closeLog()

	cfgPath, err := config.Path()
	if err != nil {
		log.Fatalf("resolve config path: %v", err)
	}
	cfg, created, err := config.Ensure(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if created {
		log.Printf("wrote default config to %s", cfgPath)
	}

	app := NewApp(cfg, logs, appIcon)

	err = wails.Run(&options.App{
		Title:  "VWork",
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,

		AssetServer: &assetserver.Options{
			Assets: assets,
		},

		Menu: appMenu(),

		Linux: &linux.Options{
			Icon: appIcon,
		},
		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title:   "About VWork",
				Message: "VWork Desktop v" + appVersion,
				Icon:    appIcon,
			},
		},

		OnStartup:     app.startup,
		OnShutdown:    app.shutdown,
		OnBeforeClose: app.beforeClose,
		Bind:          []any{app},
	})
	if err != nil {
		log.Fatal(err)
	}
}

// appMenu builds the native menu bar. The role-based App/Edit/Window menus
// only exist on macOS; elsewhere the window carries no menu.
func appMenu() *menu.Menu {
	if runtime.GOOS != "darwin" {
		return nil
	}

	m := menu.NewMenu()
	m.Append(menu.AppMenu())
	m.Append(menu.EditMenu())
	m.Append(menu.WindowMenu())
	return m
}
