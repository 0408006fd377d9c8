package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"

	"github.com/tschuyebuhl/opinion-scraper/data"
)

const (
	browserStackOptionsKey = "bstack:options"
	edgeOptionsKey         = "ms:edgeOptions"
)

// Remote opens sessions on a BrowserStack compatible W3C hub. Credentials
// travel in the capabilities, never in the hub URL.
type Remote struct {
	HubURL    string
	Username  string
	AccessKey string
	// Build groups this run's sessions on the grid dashboard.
	Build string

	dial dialFunc
}

func NewRemote(hubURL, username, accessKey, build string) *Remote {
	return &Remote{
		HubURL:    hubURL,
		Username:  username,
		AccessKey: accessKey,
		Build:     build,
		dial:      selenium.NewRemote,
	}
}

func (r *Remote) Acquire(ctx context.Context, capability data.Capability) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slog.Info("requesting remote session", "session", capability.Label(), "browser", capability.BrowserName, "hub", r.HubURL)
	wd, err := r.dial(r.Capabilities(capability), r.HubURL)
	if err != nil {
		return nil, fmt.Errorf("open remote %s: %w", capability.BrowserName, err)
	}
	return newSeleniumSession(capability.Label(), wd, nil), nil
}

// Capabilities translates a capability into the W3C form the hub expects.
func (r *Remote) Capabilities(c data.Capability) selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": c.BrowserName}
	if c.BrowserVersion != "" {
		caps["browserVersion"] = c.BrowserVersion
	}

	opts := map[string]interface{}{
		"userName":  r.Username,
		"accessKey": r.AccessKey,
	}
	setIf(opts, "os", c.OS)
	setIf(opts, "osVersion", c.OSVersion)
	setIf(opts, "deviceName", c.DeviceName)
	setIf(opts, "sessionName", c.SessionName)
	setIf(opts, "buildName", r.Build)
	if c.RealMobile {
		opts["realMobile"] = "true"
	}
	if c.Debug {
		opts["debug"] = true
	}
	caps[browserStackOptionsKey] = opts

	prefs := map[string]interface{}{"intl.accept_languages": acceptLanguages}
	switch strings.ToLower(c.BrowserName) {
	case "chrome":
		caps.AddChrome(chrome.Capabilities{Args: []string{"--lang=es"}, Prefs: prefs})
	case "edge":
		caps[edgeOptionsKey] = map[string]interface{}{
			"args":  []string{"--lang=es"},
			"prefs": prefs,
		}
	case "firefox":
		caps.AddFirefox(firefox.Capabilities{
			Prefs: map[string]interface{}{"intl.accept_languages": "es-ES, es"},
		})
	}
	return caps
}

func setIf(m map[string]interface{}, key, value string) {
	if value != "" {
		m[key] = value
	}
}
