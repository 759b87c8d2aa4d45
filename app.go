// app.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/vwork-app/vwork-desktop/internal/autostart"
	"github.com/vwork-app/vwork-desktop/internal/config"
	"github.com/vwork-app/vwork-desktop/internal/logging"
	"github.com/vwork-app/vwork-desktop/internal/notify"
	"github.com/vwork-app/vwork-desktop/internal/report"
	"github.com/vwork-app/vwork-desktop/internal/sidecar"
	"github.com/vwork-app/vwork-desktop/internal/tray"

	wruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

const appName = "vwork"

type App struct {
	ctx context.Context

	cfg      config.Config
	logs     *logging.Buffer
	trayIcon []byte

	slot     *sidecar.Slot
	reporter *report.Client
	notifier notify.Notifier
	launcher autostart.Manager

	mu       sync.RWMutex
	status   string
	quitting bool
}

// Shell status values exposed to the loading page.
const (
	statusStarting = "starting"
	statusServing  = "serving"
	statusTimedOut = "timed-out"
	statusFailed   = "failed"
)

func NewApp(cfg config.Config, logs *logging.Buffer, trayIcon []byte) *App {
	return &App{
		cfg:      cfg,
		logs:     logs,
		trayIcon: trayIcon,
		slot:     &sidecar.Slot{},
		reporter: report.New(cfg.Server.Port),
		notifier: notify.New("VWork"),
		status:   statusStarting,
	}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	if exe, err := os.Executable(); err == nil {
		if m, err := autostart.New(appName, exe); err == nil {
			a.launcher = m
		} else {
			log.Printf("autostart unavailable: %v", err)
		}
	}

	port := a.cfg.Server.Port
	log.Printf("starting server on port %d...", port)

	a.startSidecar(port)

	// Readiness polling and the follow-up navigate run off the main
	// thread; the UI stays responsive on the loading page meanwhile.
	go a.waitAndNavigate(port)

	go tray.Run(tray.Options{
		Icon:              a.trayIcon,
		Tooltip:           "VWork",
		AutostartEnabled:  a.autostartEnabled(),
		OnOpen:            a.showWindow,
		OnReport:          a.generateReport,
		OnToggleAutostart: a.toggleAutostart,
		OnQuit:            a.quit,
	})
}

// startSidecar locates and spawns the bundled server. Both failures are
// logged and deliberately non-fatal: readiness polling still runs so a
// server started by hand is adopted the same way.
func (a *App) startSidecar(port int) {
	path, err := sidecar.Find()
	if err != nil {
		log.Printf("%v", err)
		a.setStatus(statusFailed)
		return
	}
	log.Printf("server binary: %s", path)

	p, err := sidecar.Spawn(path, port)
	if err != nil {
		log.Printf("%v", err)
		a.setStatus(statusFailed)
		return
	}
	if err := a.slot.Put(p); err != nil {
		// Cannot happen on the startup path, but never leak a child.
		log.Printf("%v", err)
		_ = p.Kill()
		return
	}
	log.Printf("server spawned (pid %d), waiting for it to accept...", p.PID())

	if sidecar.IsDevLayout(path) {
		err := sidecar.WatchBinary(a.ctx, path, func() {
			log.Printf("server binary was rebuilt; restart the app to pick it up")
		})
		if err != nil {
			log.Printf("binary watch unavailable: %v", err)
		}
	}
}

func (a *App) waitAndNavigate(port int) {
	timeout := time.Duration(a.cfg.Server.StartupTimeoutSec) * time.Second
	if err := sidecar.WaitReady(port, timeout); err != nil {
		// The child is left running: late readiness still helps the user,
		// and shutdown kills it regardless.
		log.Printf("%v", err)
		a.setStatus(statusTimedOut)
		return
	}

	log.Printf("server is ready")
	a.setStatus(statusServing)
	a.navigate(port)
}

// navigate points the window at the local server. Best effort, once per
// run: failures are logged and swallowed. The URL uses "localhost" (cookie
// and CORS expectations) while the readiness probe used 127.0.0.1.
func (a *App) navigate(port int) {
	a.mu.RLock()
	quitting := a.quitting
	a.mu.RUnlock()
	if quitting || a.ctx == nil {
		log.Printf("navigate skipped: window is gone")
		return
	}

	raw := "http://localhost:" + strconv.Itoa(port)
	u, err := url.Parse(raw)
	if err != nil {
		log.Printf("navigate: bad url %q: %v", raw, err)
		return
	}

	wruntime.WindowExecJS(a.ctx, fmt.Sprintf("window.location.replace(%q);", u.String()))
}

// beforeClose turns window close into hide on macOS so the app stays
// resident in the tray. The sidecar is NOT touched here; only Quit and
// shutdown terminate it.
func (a *App) beforeClose(ctx context.Context) bool {
	a.mu.RLock()
	quitting := a.quitting
	a.mu.RUnlock()
	if quitting {
		return false
	}
	if runtime.GOOS == "darwin" && a.cfg.Window.HideOnClose {
		wruntime.WindowHide(ctx)
		return true
	}
	return false
}

// shutdown runs when the framework tears down, whatever triggered it.
// Terminate is idempotent, so the Quit path calling it first is fine.
func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	a.quitting = true
	a.mu.Unlock()

	a.slot.Terminate()
}

func (a *App) quit() {
	a.mu.Lock()
	a.quitting = true
	a.mu.Unlock()

	a.slot.Terminate()
	if a.ctx != nil {
		wruntime.Quit(a.ctx)
	}
}

func (a *App) showWindow() {
	if a.ctx == nil {
		return
	}
	wruntime.WindowUnminimise(a.ctx)
	wruntime.WindowShow(a.ctx)
}

// generateReport fires the report trigger and surfaces the outcome as a
// desktop notification. One shot, no retry.
func (a *App) generateReport() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := a.reporter.Run(ctx); err != nil {
			log.Printf("report trigger failed: %v", err)
			a.notify("VWork", fmt.Sprintf("Failed to generate report: %v", err))
			return
		}
		a.notify("VWork", "Report generation started")
	}()
}

func (a *App) notify(title, body string) {
	if err := a.notifier.Notify(title, body); err != nil {
		log.Printf("notification failed: %v", err)
	}
}

func (a *App) autostartEnabled() bool {
	if a.launcher == nil {
		return false
	}
	on, err := a.launcher.IsEnabled()
	if err != nil {
		log.Printf("launch at login state: %v", err)
		return false
	}
	return on
}

func (a *App) toggleAutostart(enable bool) (bool, error) {
	if a.launcher == nil {
		return false, autostart.ErrUnsupported
	}
	var err error
	if enable {
		err = a.launcher.Enable()
	} else {
		err = a.launcher.Disable()
	}
	on, stateErr := a.launcher.IsEnabled()
	if err == nil {
		err = stateErr
	}
	return on, err
}

func (a *App) setStatus(s string) {
	a.mu.Lock()
	a.status = s
	a.mu.Unlock()
}

// -------------------------
// Bound methods for the loading page
// -------------------------

func (a *App) GetStatus() map[string]string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]string{
		"status":    a.status,
		"port":      strconv.Itoa(a.cfg.Server.Port),
		"serverURL": a.serverURL(),
	}
}

func (a *App) GetServerURL() string {
	return a.serverURL()
}

func (a *App) GetRecentLogs() []string {
	if a.logs == nil {
		return nil
	}
	return a.logs.Snapshot()
}

func (a *App) serverURL() string {
	return "http://localhost:" + strconv.Itoa(a.cfg.Server.Port)
}
