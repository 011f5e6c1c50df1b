package config

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"time"

	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/antdata"
	"github.com/fpawel/antenna/internal/anttypes"
	"github.com/fpawel/antenna/internal/export"
	"github.com/fpawel/antenna/internal/observability"
	"github.com/hashicorp/go-multierror"
	"github.com/powerman/structlog"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"
)

// Job is a calculation described in a YAML file: configure a model, query
// gains and export the record.
type Job struct {
	Model  string         `yaml:"model"`
	Params antdata.Values `yaml:"params"`
	// Precision defaults to the application settings when omitted.
	Precision *int             `yaml:"precision,omitempty"`
	Exports   []string         `yaml:"exports,omitempty"`
	Queries   []antdata.Values `yaml:"queries,omitempty"`

	// dir resolves relative export file names
	dir string
}

// Result is the outcome of a job run.
type Result struct {
	Model    string         `yaml:"model"`
	Params   antdata.Params `yaml:"params"`
	Gains    []Gain         `yaml:"gains,omitempty"`
	Exported []string       `yaml:"exported,omitempty"`
	Specs    antdata.Specs  `yaml:"-"`
}

type Gain struct {
	Args antdata.Values    `yaml:"args"`
	Gain antdata.NullFloat `yaml:"gain"`
}

func LoadJob(filename string) (Job, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return Job{}, err
	}
	j, err := ParseJob(b, filepath.Dir(filename))
	if err != nil {
		return Job{}, merry.Prepend(err, filename)
	}
	return j, nil
}

// ParseJob decodes the job with relative exports resolved in dir.
func ParseJob(b []byte, dir string) (Job, error) {
	var j Job
	if err := yaml.Unmarshal(b, &j); err != nil {
		return Job{}, err
	}
	j.dir = dir
	j.validate()
	if err := j.Validate(); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (j *Job) validate() {
	if j.Precision == nil {
		precision := Get().Precision
		j.Precision = &precision
	}
	if j.Params == nil {
		j.Params = antdata.Values{}
	}
	for i, filename := range j.Exports {
		if !filepath.IsAbs(filename) && j.dir != "" {
			j.Exports[i] = filepath.Join(j.dir, filename)
		}
	}
}

func (j Job) Validate() error {
	if _, ok := anttypes.ModelTypes[j.Model]; !ok {
		return antdata.Errorf(antdata.ErrUnknownModel, "model: unknown %q, expected one of %v",
			j.Model, anttypes.Names())
	}
	if j.Precision != nil {
		if err := validatePrecision(*j.Precision); err != nil {
			return err
		}
	}
	for _, filename := range j.Exports {
		if !export.Supported(filename) {
			return export.ErrUnsupportedFormat.Here().WithMessagef("exports: %q", filename)
		}
	}
	for i, q := range j.Queries {
		if len(q) == 0 {
			return merry.Errorf("queries: %d: no arguments", i+1)
		}
	}
	return nil
}

// Run configures the model, answers the queries in order and writes the
// exports. A failed export does not stop the others, the returned error
// then aggregates them. Metrics go to c when it is not nil.
func (j Job) Run(ctx context.Context, log *structlog.Logger, c *observability.JobCollector) (r Result, err error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "job", attribute.String("model", j.Model))
	defer func() {
		c.ObserveJob(j.Model, start, err)
		observability.EndSpan(span, err)
	}()

	r.Model = j.Model
	m, err := anttypes.Configured(j.Model, j.Params)
	if err != nil {
		return r, merry.Prepend(err, j.Model)
	}
	if r.Params, err = m.Params(); err != nil {
		return r, err
	}
	log.Debug("configured", "model", j.Model, "params", r.Params)

	for i, q := range j.Queries {
		g, err := m.Gain(q)
		if err != nil {
			return r, merry.Prependf(err, "query %d", i+1)
		}
		c.ObserveGainQuery(j.Model)
		log.Debug("gain", "query", i+1, "args", q, "gain", g)
		r.Gains = append(r.Gains, Gain{Args: q, Gain: g})
	}

	if r.Specs, err = m.Specs(); err != nil {
		return r, err
	}
	precision := -1
	if j.Precision != nil {
		precision = *j.Precision
	}
	var mulErr error
	for _, filename := range j.Exports {
		if err := j.export(ctx, filename, r.Specs, precision); err != nil {
			c.ObserveExport(filename, err)
			log.PrintErr(err, "file", filename)
			mulErr = multierror.Append(mulErr, err)
			continue
		}
		c.ObserveExport(filename, nil)
		log.Debug("exported", "file", filename)
		r.Exported = append(r.Exported, filename)
	}
	return r, mulErr
}

func (j Job) export(ctx context.Context, filename string, s antdata.Specs, precision int) error {
	_, span := observability.StartSpan(ctx, "export", attribute.String("file", filename))
	err := export.ToFile(filename, s, precision)
	observability.EndSpan(span, err)
	return err
}
