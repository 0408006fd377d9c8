package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tebeka/selenium"

	"github.com/tschuyebuhl/opinion-scraper/data"
)

type dialFunc func(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error)

type seleniumSession struct {
	name string
	wd   selenium.WebDriver
	// stop tears down whatever backs the driver, e.g. a local chromedriver
	stop func() error

	mu     sync.Mutex
	closed bool
}

func newSeleniumSession(name string, wd selenium.WebDriver, stop func() error) *seleniumSession {
	return &seleniumSession{name: name, wd: wd, stop: stop}
}

func (s *seleniumSession) Name() string {
	return s.name
}

func (s *seleniumSession) Navigate(ctx context.Context, url string) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if err := s.wd.Get(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *seleniumSession) PageSource(ctx context.Context) (string, error) {
	if err := s.check(ctx); err != nil {
		return "", err
	}
	src, err := s.wd.PageSource()
	if err != nil {
		return "", fmt.Errorf("read page source: %w", err)
	}
	return src, nil
}

func (s *seleniumSession) WaitFor(ctx context.Context, css string, timeout time.Duration) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	err := s.wd.WaitWithTimeout(func(wd selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		elems, err := wd.FindElements(selenium.ByCSSSelector, css)
		if err != nil {
			// the grid reports "no such element" as an error, keep polling
			return false, nil
		}
		return len(elems) > 0, nil
	}, timeout)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %q within %s", data.ErrElementNotFound, css, timeout)
}

func (s *seleniumSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.wd.Quit(); err != nil {
		errs = append(errs, fmt.Errorf("quit %s: %w", s.name, err))
	}
	if s.stop != nil {
		if err := s.stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop driver for %s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *seleniumSession) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}
