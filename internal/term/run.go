package term

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/keyjar/internal/config/watcher"
	"github.com/dshills/keyjar/internal/editor"
)

// Config configures Run.
type Config struct {
	SessionConfig

	// Watcher, when set, is run alongside the session. Each change it
	// reports calls Reload and applies the returned options to the editor.
	Watcher *watcher.Watcher
	Reload  func() ([]editor.Option, error)
}

// Run edits text on a terminal until the user quits or ctx is done, and
// returns the final text. A nil Screen opens the process terminal.
func Run(ctx context.Context, cfg Config) (string, error) {
	screen := cfg.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return "", fmt.Errorf("open terminal: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return "", fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnablePaste()

	loop := editor.NewLoop()
	cfg.Screen = screen
	cfg.Scheduler = loop
	s, err := NewSession(cfg.SessionConfig)
	if err != nil {
		return "", err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	events := make(chan tcell.Event, 16)
	g.Go(func() error {
		screen.ChannelEvents(events, gctx.Done())
		return nil
	})

	if cfg.Watcher != nil {
		cfg.Watcher.OnChange(func(ev watcher.Event) {
			loop.Post(func() { s.reload(ev, cfg.Reload) })
		})
		g.Go(func() error {
			err := cfg.Watcher.Run(gctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	s.Draw()
	runErr := s.loop(gctx, events, loop)
	cancel()
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	return s.Text(), runErr
}

// loop is the event loop. Editor timers and reloads run between terminal
// events on this goroutine.
func (s *Session) loop(ctx context.Context, events <-chan tcell.Event, loop *editor.Loop) error {
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if s.HandleEvent(ev) {
				return nil
			}
		case <-loop.Wake():
			loop.RunPending()
		}
		s.Draw()
	}
}

func (s *Session) reload(ev watcher.Event, reload func() ([]editor.Option, error)) {
	if reload == nil {
		return
	}
	opts, err := reload()
	if err != nil {
		s.log.Warn("reload %s: %v", ev.Path, err)
		s.message = "config: " + err.Error()
		return
	}
	s.ed.UpdateOptions(opts...)
	s.log.Info("reloaded %s (%s)", ev.Path, ev.Op)
	s.message = "config reloaded"
}
