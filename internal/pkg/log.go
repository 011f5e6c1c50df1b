package pkg

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fpawel/antenna/internal/pkg/logfile"
	"github.com/powerman/structlog"
)

// InitLog sets the line layout of the default logger: application, level and
// unit first, then the message, the stack and the source line last.
func InitLog() {
	structlog.DefaultLogger.
		SetPrefixKeys(structlog.KeyApp, structlog.KeyLevel, structlog.KeyUnit, structlog.KeyTime).
		SetDefaultKeyvals(
			structlog.KeyApp, filepath.Base(os.Args[0]),
			structlog.KeySource, structlog.Auto,
		).
		SetSuffixKeys(structlog.KeyStack, structlog.KeySource).
		SetKeysFormat(map[string]string{
			structlog.KeyTime:   " %[2]s",
			structlog.KeySource: " %[2]s",
			structlog.KeyUnit:   " %-7[2]s",
		})
}

// SetLogDebug switches the default logger between debug and info levels.
func SetLogDebug(debug bool) {
	if debug {
		structlog.DefaultLogger.SetLogLevel(structlog.DBG)
	} else {
		structlog.DefaultLogger.SetLogLevel(structlog.INF)
	}
}

// LogToFile copies the output of loggers created afterwards to the daily log
// file of the application. The returned closer closes the file.
func LogToFile() (io.Closer, error) {
	f, err := logfile.New("." + filepath.Base(os.Args[0]))
	if err != nil {
		return nil, err
	}
	structlog.DefaultLogger.SetOutput(io.MultiWriter(os.Stderr, f))
	return f, nil
}

func LogPrependSuffixKeys(log *structlog.Logger, args ...interface{}) *structlog.Logger {
	var keys []string
	for i, arg := range args {
		if i%2 == 0 {
			k, ok := arg.(string)
			if !ok {
				panic("key must be string")
			}
			keys = append(keys, k)
		}
	}
	return log.New(args...).PrependSuffixKeys(keys...)
}
