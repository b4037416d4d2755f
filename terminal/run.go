package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Run draws v and handles input until the user quits. The screen must already be
// initialised; Run does not finalise it.
func Run(screen tcell.Screen, v View, caps Capabilities) error {
	preview := NewPreview(screen, caps)
	preview.Draw(v)

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			// screen finalised
			return nil
		case *tcell.EventResize:
			screen.Sync()
			preview.Draw(v)
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			case tcell.KeyLeft:
				preview.Pan(-2, 0)
			case tcell.KeyRight:
				preview.Pan(2, 0)
			case tcell.KeyUp:
				preview.Pan(0, -1)
			case tcell.KeyDown:
				preview.Pan(0, 1)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q', 'Q':
					return nil
				case '0':
					preview.panX, preview.panY = 0, 0
				}
			}
			preview.Draw(v)
		}
	}
}

// Show opens the terminal, runs the preview and restores the terminal on exit.
func Show(v View) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to setup terminal: %w", err)
	}
	defer screen.Fini()

	screen.HideCursor()
	return Run(screen, v, DetectCapabilities())
}
