package engine

import (
	"fmt"

	"github.com/1broseidon/halfsnap/internal/platform"
)

// ResolveFocusedWindow returns the window the user is working in: the active
// application's focused window, or its main window when nothing is focused.
// Other windows of the application are never considered.
func ResolveFocusedWindow(apps platform.Applications, ctl platform.WindowControl) (platform.Window, error) {
	app, err := apps.ActiveApplication()
	if err != nil {
		return platform.Window{}, fmt.Errorf("%w: %v", ErrNoActiveApplication, err)
	}

	id, err := apps.FocusedWindow(app)
	if err == nil && id != 0 {
		return platform.NewWindow(id, ctl), nil
	}

	id, err = apps.MainWindow(app)
	if err != nil {
		return platform.Window{}, fmt.Errorf("%w: pid %d: %v", ErrNoResolvableWindow, app.PID, err)
	}
	if id == 0 {
		return platform.Window{}, fmt.Errorf("%w: pid %d", ErrNoResolvableWindow, app.PID)
	}
	return platform.NewWindow(id, ctl), nil
}
