//go:build windows
// +build windows

package daemon

import (
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	MB_OK              = 0x00000000
	MB_ICONINFORMATION = 0x00000040
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon *Daemon
	logger *zap.Logger
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	systray.SetTitle("MC")
	systray.SetTooltip("Masjid Clock")

	mReload := systray.AddMenuItem("Reload Timetable", "Re-read the prayer timetable file")
	systray.AddSeparator()
	mStatus := systray.AddMenuItem("Status", "Show the next event and Hijri date")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	// Start the poll loop in background
	go func() {
		if err := t.daemon.runLoop(); err != nil {
			t.logger.Error("Poll loop exited", zap.Error(err))
		}
	}()

	go func() {
		for {
			select {
			case <-mReload.ClickedCh:
				t.logger.Info("Reload clicked from tray")
				go t.daemon.Reload()
			case <-mStatus.ClickedCh:
				t.logger.Info("Status clicked from tray")
				showMessageBox("Masjid Clock Status", t.daemon.Status())
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Quit closes the system tray application
func (t *TrayApp) Quit() {
	systray.Quit()
}

// SetTooltip updates the tray tooltip with the current countdown
func (t *TrayApp) SetTooltip(text string) {
	systray.SetTooltip(text)
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(MB_OK|MB_ICONINFORMATION),
	)
}
