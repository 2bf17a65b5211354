package tpf

import(
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

verbosity: 1
correction: both

customaperture:
  enabled: true
  shape: circle
  r: 2.0
  method: exact

*/

// CustomApertureOptions configures an optional user-specified aperture
// that replaces the catalog selection.
type CustomApertureOptions struct {
	Enabled bool
	Shape   string
	R       float64
	L       float64
	W       float64
	Theta   float64
	X       float64
	Y       float64
	HasPos  bool    `yaml:"haspos"`
	Method  string
}

type Config struct {
	Verbosity      int

	// Which systematics correction to run on the selected light
	// curve: "none", "jitter", "roll", or "both".
	Correction     string

	CustomAperture CustomApertureOptions
}

func NewConfig() Config {
	return Config{
		Correction: "none",
	}
}

func LoadConfig(filename string) (Config, error) {
	c := NewConfig()

	if contents, err := ioutil.ReadFile(filename); err != nil {
		return c, fmt.Errorf("read '%s': %v", filename, err)
	} else if err := yaml.Unmarshal(contents, &c); err != nil {
		return c, fmt.Errorf("parse '%s': %v", filename, err)
	}

	return c, c.FinalizeConfig()
}

// FinalizeConfig does sanity checks and fills in defaults.
func (c *Config)FinalizeConfig() error {
	if c.Correction == "" {
		c.Correction = "none"
	}

	switch c.Correction {
	case "none", "jitter", "roll", "both":
	default:
		return fmt.Errorf("no correction mode named '%s'", c.Correction)
	}

	if c.CustomAperture.Enabled && c.CustomAperture.Method == "" {
		c.CustomAperture.Method = "exact"
	}

	return nil
}

func (c *Config)DoJitter() bool { return c.Correction == "jitter" || c.Correction == "both" }
func (c *Config)DoRoll() bool   { return c.Correction == "roll" || c.Correction == "both" }
