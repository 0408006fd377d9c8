package data

// Capability describes the browser one remote session should run.
type Capability struct {
	Name           string `yaml:"name"`
	BrowserName    string `yaml:"browserName"`
	BrowserVersion string `yaml:"browserVersion,omitempty"`
	OS             string `yaml:"os,omitempty"`
	OSVersion      string `yaml:"osVersion,omitempty"`
	DeviceName     string `yaml:"deviceName,omitempty"`
	RealMobile     bool   `yaml:"realMobile,omitempty"`
	SessionName    string `yaml:"sessionName,omitempty"`
	Debug          bool   `yaml:"debug,omitempty"`
}

// Label is the name used for this capability in logs and reports.
func (c Capability) Label() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.SessionName != "":
		return c.SessionName
	default:
		return c.BrowserName
	}
}
