package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tschuyebuhl/opinion-scraper/data"
)

// MaxSessions caps how many remote sessions one run may start.
const MaxSessions = 5

//go:embed capabilities.yaml
var defaultCapabilities []byte

// DefaultCapabilities returns the built-in five-browser remote fleet.
func DefaultCapabilities() []data.Capability {
	caps, err := ParseCapabilities(defaultCapabilities)
	if err != nil {
		panic(fmt.Sprintf("embedded capabilities: %v", err))
	}
	return caps
}

// LoadCapabilities reads a YAML capability list from path.
func LoadCapabilities(path string) ([]data.Capability, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capabilities: %w", err)
	}
	return ParseCapabilities(raw)
}

func ParseCapabilities(raw []byte) ([]data.Capability, error) {
	var caps []data.Capability
	if err := yaml.Unmarshal(raw, &caps); err != nil {
		return nil, fmt.Errorf("parse capabilities: %w", err)
	}
	if len(caps) == 0 {
		return nil, errors.New("no capabilities defined")
	}
	if len(caps) > MaxSessions {
		return nil, fmt.Errorf("%d capabilities defined, at most %d sessions allowed", len(caps), MaxSessions)
	}
	for i, c := range caps {
		if c.BrowserName == "" {
			return nil, fmt.Errorf("capability %d: browserName is required", i)
		}
	}
	return caps, nil
}
