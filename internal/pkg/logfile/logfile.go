// Package logfile opens the daily log files in the logs directory next to
// the executable.
package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// New opens the log file of the current day for appending.
func New(filenameSuffix string) (*os.File, error) {
	if err := os.MkdirAll(LogDir, os.ModePerm); err != nil {
		return nil, err
	}
	return os.OpenFile(Filename(time.Now(), filenameSuffix), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
}

func Filename(t time.Time, suffix string) string {
	return filepath.Join(LogDir, fmt.Sprintf("%s%s.log", t.Format("2006-01-02"), suffix))
}

var (
	LogDir = filepath.Join(filepath.Dir(os.Args[0]), "logs")
)
