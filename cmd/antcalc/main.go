// Command antcalc calculates ITU antenna radiation patterns.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fpawel/antenna/internal/config"
	"github.com/fpawel/antenna/internal/pkg"
	"github.com/powerman/structlog"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logFile bool
	log     = structlog.New()
)

var rootCmd = &cobra.Command{
	Use:   "antcalc",
	Short: "ITU-R reference antenna radiation patterns",
	Long: `antcalc configures ITU-R reference antenna models (F.699, F.1245,
F.1336, S.465, S.580), evaluates gain toward given angles and exports the
361-point horizontal and vertical patterns to MSI, CSV, JSON, YAML,
HTML, SQLite and plot files, optionally zstd compressed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Open(); err != nil {
			return err
		}
		pkg.SetLogDebug(verbose || config.Get().Debug)
		if logFile {
			f, err := pkg.LogToFile()
			if err != nil {
				return err
			}
			closeLogFile = f.Close
		}
		log = structlog.New(structlog.KeyUnit, cmd.Name())
		return nil
	},
}

var closeLogFile = func() error { return nil }

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug output and error stack traces")
	rootCmd.PersistentFlags().BoolVar(&logFile, "log-file", false, "copy the log to the daily file in the logs directory")
	rootCmd.AddCommand(modelsCmd, schemaCmd, gainCmd, patternCmd, runCmd, luaCmd, configCmd)
}

func main() {
	pkg.InitLog()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		log.PrintErr(err)
		if verbose {
			pkg.PrintMerryStacktrace(log, err)
		}
	}
	log.ErrIfFail(closeLogFile)
	if err != nil {
		os.Exit(1)
	}
}
