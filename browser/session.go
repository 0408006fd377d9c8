// Package browser acquires driven browser sessions, either a local Chrome
// through chromedriver or remote sessions on a Selenium grid.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tschuyebuhl/opinion-scraper/data"
)

var (
	ErrSessionUnavailable = errors.New("browser session unavailable")
	ErrSessionClosed      = errors.New("browser session closed")
)

// Session is one exclusively owned browser handle.
type Session interface {
	Name() string
	Navigate(ctx context.Context, url string) error
	PageSource(ctx context.Context) (string, error)
	// WaitFor blocks until css matches at least one element, failing with
	// data.ErrElementNotFound once timeout passes.
	WaitFor(ctx context.Context, css string, timeout time.Duration) error
	Close() error
}

// Acquirer hands out ready-to-drive sessions for a capability.
type Acquirer interface {
	Acquire(ctx context.Context, capability data.Capability) (Session, error)
}

// With acquires a session for capability, runs fn with it and closes the
// session on every path out, including panics in fn.
func With(ctx context.Context, acq Acquirer, capability data.Capability, fn func(Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sess, err := acq.Acquire(ctx, capability)
	if err != nil {
		return fmt.Errorf("acquire %s: %w: %w", capability.Label(), ErrSessionUnavailable, err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			slog.Error("closing browser session", "session", sess.Name(), "error", err)
		}
	}()
	return fn(sess)
}
