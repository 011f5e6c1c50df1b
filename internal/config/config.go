// Package config holds the application settings and the calculation jobs.
package config

import (
	"sync"

	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/export"
	"github.com/fpawel/antenna/internal/pkg/cfgfile"
	"github.com/fpawel/antenna/internal/pkg/must"
	"gopkg.in/yaml.v3"
)

// Config is the application settings stored in antcalc.yaml next to the
// executable.
type Config struct {
	// Precision is the number of decimal places of exported numbers, -1 for
	// exact values.
	Precision int `yaml:"precision"`
	// ExportDir is where relative export file names of the command line
	// are resolved. Empty means the working directory.
	ExportDir string `yaml:"export_dir"`
	// Exports is the list of files written by the pattern command when none
	// are given.
	Exports []string `yaml:"exports"`
	Debug   bool     `yaml:"debug"`
}

const MaxPrecision = 15

func Open() error {
	c := defaultConfig()
	if _, err := file.Get(&c); err != nil {
		return err
	}
	c.validate()
	if err := c.Validate(); err != nil {
		return merry.Prepend(err, file.Filename())
	}
	mu.Lock()
	defer mu.Unlock()
	cfg = c
	return nil
}

func SetYaml(strYaml []byte) error {
	var c Config
	if err := yaml.Unmarshal(strYaml, &c); err != nil {
		return err
	}
	return Set(c)
}

func Get() (r Config) {
	mu.RLock()
	defer mu.RUnlock()
	must.UnmarshalYaml(must.MarshalYaml(cfg), &r)
	return
}

func Set(c Config) error {
	c.validate()
	if err := c.Validate(); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if err := file.Set(c); err != nil {
		return err
	}
	cfg = c
	return nil
}

func Filename() string {
	return file.Filename()
}

func (c Config) Validate() error {
	if err := validatePrecision(c.Precision); err != nil {
		return err
	}
	for _, filename := range c.Exports {
		if !export.Supported(filename) {
			return export.ErrUnsupportedFormat.Here().WithMessagef("exports: %q", filename)
		}
	}
	return nil
}

func (c *Config) validate() {
	if c.Exports == nil {
		c.Exports = defaultConfig().Exports
	}
}

func validatePrecision(precision int) error {
	if precision < -1 || precision > MaxPrecision {
		return merry.Errorf("precision %d: expected -1 for exact values or 0..%d", precision, MaxPrecision)
	}
	return nil
}

var (
	mu   sync.RWMutex
	cfg  = defaultConfig()
	file = cfgfile.New("antcalc.yaml", yaml.Marshal, yaml.Unmarshal)
)
