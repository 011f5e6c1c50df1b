package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/antdata"
	"github.com/fpawel/antenna/internal/anttypes"
	"github.com/fpawel/antenna/internal/config"
	"github.com/fpawel/antenna/internal/export"
	"github.com/fpawel/antenna/internal/observability"
	"github.com/fpawel/antenna/internal/pkg"
	"github.com/fpawel/antenna/internal/worklua"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	modelParams   map[string]string
	queryArgs     map[string]string
	useExample    bool
	outputFiles   []string
	precision     int
	patternStdout bool
	metricsFile   string
	traceFile     string
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the antenna models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range anttypes.Names() {
			m, err := anttypes.New(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%v\n", name, m.Title(), m.Arguments())
		}
		return w.Flush()
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema MODEL",
	Short: "Print the parameters of a model and an example configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := anttypes.New(args[0])
		if err != nil {
			return err
		}
		example, err := anttypes.Example(args[0])
		if err != nil {
			return err
		}
		return printYaml(cmd, struct {
			Model     string              `yaml:"model"`
			Title     string              `yaml:"title"`
			Arguments []string            `yaml:"arguments,flow"`
			Params    []antdata.ParamInfo `yaml:"params"`
			Example   antdata.Values      `yaml:"example"`
		}{m.Name(), m.Title(), m.Arguments(), m.Schema().Info(), example})
	},
}

var gainCmd = &cobra.Command{
	Use:   "gain MODEL",
	Short: "Print the gain toward the direction given by the query arguments",
	Example: `  antcalc gain ITUF699 -p oper_freq_mhz=23000 -p diameter_m=6 -q off_axis_angle=3
  antcalc gain ITUF1336s --example -q azimuth=30 -q elevation=-2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := configuredModel(args[0])
		if err != nil {
			return err
		}
		g, err := m.Gain(parseValues(queryArgs))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), g.Round(precision))
		return nil
	},
}

var patternCmd = &cobra.Command{
	Use:   "pattern MODEL",
	Short: "Export the horizontal and vertical patterns",
	Long: `Exports the record of the configured model to the files given with -o,
the format being chosen by the extension: ` + fmt.Sprint(export.Extensions()) + `.
Text formats are compressed with zstd when the name ends with ` + export.CompressedExt + `,
e.g. s465.msi` + export.CompressedExt + `. Without -o the exports of the application settings are written.`,
	Example: `  antcalc pattern ITUS465 -p oper_freq_mhz=20000 -p diameter_m=1.2 -o s465.msi -o s465.png`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := configuredModel(args[0])
		if err != nil {
			return err
		}
		s, err := m.Specs()
		if err != nil {
			return err
		}
		if patternStdout {
			return export.WriteYAML(cmd.OutOrStdout(), s.Round(precision))
		}
		filenames := exportPaths(outputFiles, config.Get())
		if err := export.ToFiles(filenames, s, precision); err != nil {
			return err
		}
		for _, filename := range filenames {
			log.Info("exported", "file", filename)
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run JOB.yaml...",
	Short: "Run the calculation jobs and print their results",
	Long: `Runs the jobs in order and prints the result of each as YAML. A job file
names the model, its parameters, the gain queries and the export files:

  model: ITUF699
  params: {oper_freq_mhz: 23000, diameter_m: 6}
  precision: 2
  exports: [f699.msi, f699.png]
  queries:
    - off_axis_angle: 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		if traceFile != "" {
			f, err := os.Create(traceFile)
			if err != nil {
				return err
			}
			defer log.ErrIfFail(f.Close)
			shutdown, err := observability.InitTracing(f, "antcalc")
			if err != nil {
				return err
			}
			defer log.ErrIfFail(func() error { return shutdown(context.Background()) })
		}
		var c *observability.JobCollector
		reg := prometheus.NewRegistry()
		if metricsFile != "" {
			if c, err = observability.NewJobCollector(reg); err != nil {
				return err
			}
			defer func() {
				if errWrite := observability.WriteTextfile(metricsFile, reg); err == nil {
					err = errWrite
				}
			}()
		}
		for _, filename := range args {
			j, err := config.LoadJob(filename)
			if err != nil {
				return err
			}
			r, err := j.Run(ctx, pkg.LogPrependSuffixKeys(log, "job", filepath.Base(filename)), c)
			if errPrint := printYaml(cmd, r); errPrint != nil {
				return errPrint
			}
			if err != nil {
				return merry.Prepend(err, filename)
			}
		}
		return nil
	},
}

var luaCmd = &cobra.Command{
	Use:   "lua SCRIPT.lua",
	Short: "Run a Lua script with the antenna global",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return worklua.RunFile(cmd.Context(), log, args[0])
	},
}

var configCmd = &cobra.Command{
	Use:   "config [SETTINGS.yaml]",
	Short: "Print the application settings or replace them from a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			b, err := ioutil.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := config.SetYaml(b); err != nil {
				return merry.Prepend(err, args[0])
			}
			log.Info("saved", "file", config.Filename())
		}
		return printYaml(cmd, config.Get())
	},
}

func init() {
	for _, cmd := range []*cobra.Command{gainCmd, patternCmd} {
		cmd.Flags().StringToStringVarP(&modelParams, "param", "p", nil, "model parameter NAME=VALUE")
		cmd.Flags().BoolVar(&useExample, "example", false, "start from the example parameters of the model")
		cmd.Flags().IntVar(&precision, "precision", -1, "decimal places, -1 for exact values")
	}
	gainCmd.Flags().StringToStringVarP(&queryArgs, "query", "q", nil, "gain query argument NAME=VALUE")
	patternCmd.Flags().StringArrayVarP(&outputFiles, "output", "o", nil, "export file")
	patternCmd.Flags().BoolVar(&patternStdout, "stdout", false, "print the record as YAML instead of exporting")
	runCmd.Flags().StringVar(&metricsFile, "metrics", "", "write Prometheus metrics of the jobs to the textfile")
	runCmd.Flags().StringVar(&traceFile, "trace", "", "write the job spans as JSON to the file")
	patternCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("precision") {
			precision = config.Get().Precision
		}
		return nil
	}
}

func configuredModel(name string) (antdata.Model, error) {
	raw := antdata.Values{}
	if useExample {
		example, err := anttypes.Example(name)
		if err != nil {
			return nil, err
		}
		raw = example
	}
	for k, v := range parseValues(modelParams) {
		raw[k] = v
	}
	m, err := anttypes.Configured(name, raw)
	if err != nil {
		return nil, err
	}
	p, err := m.Params()
	if err != nil {
		return nil, err
	}
	log.Debug("configured", "model", name, "params", p)
	return m, nil
}

// parseValues takes numbers as float64 and anything else as a string.
func parseValues(xs map[string]string) antdata.Values {
	r := make(antdata.Values, len(xs))
	for k, s := range xs {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			r[k] = v
		} else {
			r[k] = s
		}
	}
	return r
}

// exportPaths resolves relative file names in the export directory of the
// settings, falling back to the settings exports.
func exportPaths(filenames []string, c config.Config) []string {
	if len(filenames) == 0 {
		filenames = c.Exports
	}
	r := make([]string, len(filenames))
	for i, filename := range filenames {
		if c.ExportDir != "" && !filepath.IsAbs(filename) {
			filename = filepath.Join(c.ExportDir, filename)
		}
		r[i] = filename
	}
	return r
}

func printYaml(cmd *cobra.Command, v interface{}) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
