package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/tschuyebuhl/opinion-scraper/data"
)

type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

const (
	DefaultListingURL       = "https://elpais.com/opinion/"
	DefaultImagesDir        = "images"
	DefaultChromedriverPath = "chromedriver"
	DefaultChromedriverPort = 9515
	DefaultHubURL           = "https://hub-cloud.browserstack.com/wd/hub"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLocal:
		return ModeLocal, nil
	case ModeRemote:
		return ModeRemote, nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeLocal, ModeRemote)
}

type BrowserStack struct {
	Username  string
	AccessKey string
	HubURL    string
}

type Chromedriver struct {
	Path     string
	Port     int
	Headless bool
}

type Google struct {
	CredentialsFile string
	ProjectID       string
}

type Config struct {
	Mode         Mode
	ListingURL   string
	ImagesDir    string
	LogLevel     slog.Level
	MetricsAddr  string
	BrowserStack BrowserStack
	Chromedriver Chromedriver
	Google       Google
	Capabilities []data.Capability
}

// Error lists every configuration problem found for the selected mode.
type Error struct {
	Mode     Mode
	Problems []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s configuration: %s", e.Mode, strings.Join(e.Problems, "; "))
}

// Load reads the configuration for mode from getenv and validates it. Only
// the variables the mode needs are required.
func Load(mode Mode, getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Mode:        mode,
		ListingURL:  valueOr(getenv("SCRAPER_LISTING_URL"), DefaultListingURL),
		ImagesDir:   DefaultImagesDir,
		MetricsAddr: strings.TrimSpace(getenv("SCRAPER_METRICS_ADDR")),
		BrowserStack: BrowserStack{
			Username:  strings.TrimSpace(getenv("BROWSERSTACK_USERNAME")),
			AccessKey: strings.TrimSpace(getenv("BROWSERSTACK_ACCESS_KEY")),
			HubURL:    DefaultHubURL,
		},
		Chromedriver: Chromedriver{
			Path: valueOr(getenv("SCRAPER_CHROMEDRIVER_PATH"), DefaultChromedriverPath),
			Port: DefaultChromedriverPort,
		},
		Google: Google{
			CredentialsFile: strings.TrimSpace(getenv("GOOGLE_APPLICATION_CREDENTIALS")),
			ProjectID:       valueOr(getenv("GOOGLE_CLOUD_PROJECT"), getenv("GCP_PROJECT")),
		},
	}
	errs := &Error{Mode: mode}

	switch dir := strings.TrimSpace(getenv("SCRAPER_IMAGES_DIR")); dir {
	case "":
	case "off":
		cfg.ImagesDir = ""
	default:
		cfg.ImagesDir = dir
	}

	if u, err := url.Parse(cfg.ListingURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs.add("SCRAPER_LISTING_URL %q is not an absolute URL", cfg.ListingURL)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(valueOr(getenv("SCRAPER_LOG_LEVEL"), "info"))); err != nil {
		errs.add("SCRAPER_LOG_LEVEL: %v", err)
	}

	if v := strings.TrimSpace(getenv("SCRAPER_CHROMEDRIVER_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			errs.add("SCRAPER_CHROMEDRIVER_PORT %q is not a valid port", v)
		} else {
			cfg.Chromedriver.Port = port
		}
	}
	if v := strings.TrimSpace(getenv("SCRAPER_HEADLESS")); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			errs.add("SCRAPER_HEADLESS %q is not a boolean", v)
		}
		cfg.Chromedriver.Headless = headless
	}

	cfg.loadGoogle(errs)

	switch mode {
	case ModeLocal:
	case ModeRemote:
		if cfg.BrowserStack.Username == "" {
			errs.add("BROWSERSTACK_USERNAME is required")
		}
		if cfg.BrowserStack.AccessKey == "" {
			errs.add("BROWSERSTACK_ACCESS_KEY is required")
		}
		cfg.Capabilities = DefaultCapabilities()
		if path := strings.TrimSpace(getenv("SCRAPER_CAPABILITIES_FILE")); path != "" {
			caps, err := LoadCapabilities(path)
			if err != nil {
				errs.add("SCRAPER_CAPABILITIES_FILE: %v", err)
			} else {
				cfg.Capabilities = caps
			}
		}
	default:
		errs.add("unknown mode %q", mode)
	}

	if len(errs.Problems) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// loadGoogle checks the service account file and, when no project was set in
// the environment, takes the project id from it.
func (c *Config) loadGoogle(errs *Error) {
	if c.Google.CredentialsFile == "" {
		errs.add("GOOGLE_APPLICATION_CREDENTIALS is required")
		return
	}
	raw, err := os.ReadFile(c.Google.CredentialsFile)
	if err != nil {
		errs.add("GOOGLE_APPLICATION_CREDENTIALS: %v", err)
		return
	}
	var creds struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(raw, &creds); err != nil {
		errs.add("GOOGLE_APPLICATION_CREDENTIALS: %s is not a JSON credentials file: %v", c.Google.CredentialsFile, err)
		return
	}
	if c.Google.ProjectID == "" {
		c.Google.ProjectID = creds.ProjectID
	}
	if c.Google.ProjectID == "" {
		errs.add("no Google Cloud project: set GOOGLE_CLOUD_PROJECT or add project_id to %s", c.Google.CredentialsFile)
	}
}

func (e *Error) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return strings.TrimSpace(fallback)
}
