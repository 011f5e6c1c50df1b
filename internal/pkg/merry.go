package pkg

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
)

// PrintMerryStacktrace logs the stack captured by a merry error one frame
// per line. Nothing is logged when e has no stack.
func PrintMerryStacktrace(log *structlog.Logger, e error) {
	for i, line := range MerryStacktrace(e) {
		ident := " "
		if i > 0 {
			ident = "\t"
		}
		log.PrintErr(ident + line)
	}
}

// MerryStacktrace formats the frames of the error's stack as
// "file:line function" with module cache paths shortened.
func MerryStacktrace(e error) []string {
	var xs []string
	for _, fp := range merry.Stack(e) {
		fnc := runtime.FuncForPC(fp)
		if fnc == nil {
			continue
		}
		name := filepath.Base(fnc.Name())
		if name == "runtime.goexit" {
			continue
		}
		file, line := fnc.FileLine(fp)
		xs = append(xs, fmt.Sprintf("%s:%d %s", formatStackTraceFileName(file), line, name))
	}
	return xs
}

func formatStackTraceFileName(file string) string {
	file = strings.ReplaceAll(file, "\\", "/")
	file = excludeGoPathPkgModRegexp.ReplaceAllString(file, "")
	file = excludeModVersionRegexp.ReplaceAllString(file, "")
	return file
}

var (
	excludeGoPathPkgModRegexp = regexp.MustCompile(`^.*/pkg/mod/`)
	excludeModVersionRegexp   = regexp.MustCompile(`@v[^/]+`)
)
