package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/ayusman/pinchflap/internal/game"
)

// KeyEvent maps a key press to a game event.
func KeyEvent(ev *tcell.EventKey) (game.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return game.EventConfirm, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.EventQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return game.EventFlap, true
		case 'r', 'R':
			return game.EventReset, true
		case 'q', 'Q':
			return game.EventQuit, true
		}
	}
	return 0, false
}

// Listen polls terminal events until the screen is closed or ctx is done,
// passing each mapped key to send. It blocks; run it on its own goroutine.
func (s *Screen) Listen(ctx context.Context, send func(game.Event) bool) {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if e, ok := KeyEvent(ev); ok && !send(e) {
				s.log.Warn().Stringer("event", e).Msg("Event queue full, key dropped")
			}
		case *tcell.EventResize:
			s.screen.Sync()
		}

		if ctx.Err() != nil {
			return
		}
	}
}
