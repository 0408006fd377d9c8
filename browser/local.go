package browser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"github.com/tschuyebuhl/opinion-scraper/data"
)

// acceptLanguages makes the site serve its Spanish edition.
const acceptLanguages = "es,es_ES"

// Local starts a chromedriver per session and drives a Chrome set up to
// browse in Spanish.
type Local struct {
	Path     string
	Port     int
	Headless bool

	startService func(path string, port int) (stop func() error, err error)
	dial         dialFunc
}

func NewLocal(path string, port int, headless bool) *Local {
	return &Local{
		Path:     path,
		Port:     port,
		Headless: headless,
		startService: func(path string, port int) (func() error, error) {
			service, err := selenium.NewChromeDriverService(path, port)
			if err != nil {
				return nil, err
			}
			return service.Stop, nil
		},
		dial: selenium.NewRemote,
	}
}

// LocalCapability is the capability a local run reports itself as.
func LocalCapability() data.Capability {
	return data.Capability{Name: "local-chrome", BrowserName: "chrome"}
}

func (l *Local) Acquire(ctx context.Context, capability data.Capability) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slog.Info("starting chromedriver", "path", l.Path, "port", l.Port)
	stop, err := l.startService(l.Path, l.Port)
	if err != nil {
		return nil, fmt.Errorf("start chromedriver %s: %w", l.Path, err)
	}

	wd, err := l.dial(l.Capabilities(), fmt.Sprintf("http://localhost:%d/wd/hub", l.Port))
	if err != nil {
		if stopErr := stop(); stopErr != nil {
			slog.Error("stopping chromedriver", "error", stopErr)
		}
		return nil, fmt.Errorf("open local chrome: %w", err)
	}
	return newSeleniumSession(capability.Label(), wd, stop), nil
}

// Capabilities returns the Chrome capabilities for a local session.
func (l *Local) Capabilities() selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": "chrome"}
	args := []string{"--lang=es"}
	if l.Headless {
		args = append(args, "--headless=new")
	}
	caps.AddChrome(chrome.Capabilities{
		Args:  args,
		Prefs: map[string]interface{}{"intl.accept_languages": acceptLanguages},
	})
	return caps
}
