// Package tray builds the system tray icon and menu and dispatches menu
// clicks to the shell.
package tray

import (
	"log"

	"github.com/getlantern/systray"
)

// Options wires tray menu actions back into the shell. All callbacks run
// off the main thread; they must not block for long.
type Options struct {
	Icon    []byte
	Tooltip string

	// AutostartEnabled seeds the "Launch at Login" checkbox.
	AutostartEnabled bool

	OnOpen   func()
	OnReport func()

	// OnToggleAutostart flips launch-at-login and returns the new state.
	OnToggleAutostart func(enable bool) (bool, error)

	// OnQuit must terminate the sidecar before asking the host to exit.
	OnQuit func()
}

// Run starts the tray loop. It blocks until Quit is called, so the shell
// runs it on its own goroutine.
func Run(opts Options) {
	systray.Run(func() { onReady(opts) }, nil)
}

// Quit tears the tray icon down.
func Quit() {
	systray.Quit()
}

func onReady(opts Options) {
	if len(opts.Icon) > 0 {
		systray.SetIcon(opts.Icon)
	}
	if opts.Tooltip != "" {
		systray.SetTooltip(opts.Tooltip)
	}

	open := systray.AddMenuItem("Open VWork", "Show the VWork window")
	generate := systray.AddMenuItem("Generate Report", "Ask the server to generate a report")
	systray.AddSeparator()
	autolaunch := systray.AddMenuItemCheckbox("Launch at Login", "Start VWork when you log in", opts.AutostartEnabled)
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit VWork", "Quit VWork and stop the server")

	go func() {
		for {
			select {
			case <-open.ClickedCh:
				if opts.OnOpen != nil {
					opts.OnOpen()
				}
			case <-generate.ClickedCh:
				if opts.OnReport != nil {
					opts.OnReport()
				}
			case <-autolaunch.ClickedCh:
				if opts.OnToggleAutostart == nil {
					continue
				}
				enabled, err := opts.OnToggleAutostart(!autolaunch.Checked())
				if err != nil {
					log.Printf("launch at login: %v", err)
				}
				if enabled {
					autolaunch.Check()
				} else {
					autolaunch.Uncheck()
				}
			case <-quit.ClickedCh:
				if opts.OnQuit != nil {
					opts.OnQuit()
				}
				systray.Quit()
				return
			}
		}
	}()
}
