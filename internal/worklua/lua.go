// Package worklua runs Lua scripts that configure antenna models, query gains
// and export patterns.
package worklua

import (
	"context"
	"strings"

	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/anttypes"
	"github.com/fpawel/antenna/internal/config"
	"github.com/powerman/structlog"
	lua "github.com/yuin/gopher-lua"
	luar "layeh.com/gopher-luar"
)

// Import is the global "antenna" of a script:
//
//	local a = antenna:new("ITUF699")
//	a:configure{oper_freq_mhz = 23000, diameter_m = 6}
//	antenna:info(a:gain{off_axis_angle = 3})
type Import struct {
	l   *lua.LState
	log *structlog.Logger
}

func NewImport(log *structlog.Logger, luaState *lua.LState) *Import {
	return &Import{
		l:   luaState,
		log: log,
	}
}

// RunFile executes the script file with the "antenna" global set.
func RunFile(ctx context.Context, log *structlog.Logger, filename string) error {
	return run(ctx, log, func(l *lua.LState) error {
		return l.DoFile(filename)
	})
}

func RunString(ctx context.Context, log *structlog.Logger, source string) error {
	return run(ctx, log, func(l *lua.LState) error {
		return l.DoString(source)
	})
}

func run(ctx context.Context, log *structlog.Logger, do func(*lua.LState) error) error {
	luaState := lua.NewState()
	defer luaState.Close()
	luaState.SetContext(ctx)
	luaState.SetGlobal("antenna", luar.New(luaState, NewImport(log, luaState)))
	return do(luaState)
}

// New returns an unconfigured antenna of the named model.
func (x *Import) New(name string) *luaAntenna {
	m, err := anttypes.New(name)
	x.check(err)
	return &luaAntenna{
		Name:  m.Name(),
		Title: m.Title(),
		m:     m,
		imp:   x,
	}
}

func (x *Import) Models() *lua.LTable {
	t := x.l.NewTable()
	for _, name := range anttypes.Names() {
		t.Append(lua.LString(name))
	}
	return t
}

// Example returns the parameters of a typical antenna of the model.
func (x *Import) Example(name string) *lua.LTable {
	v, err := anttypes.Example(name)
	x.check(err)
	return toLuaValue(x.l, map[string]interface{}(v)).(*lua.LTable)
}

// Precision is the export precision of the application settings.
func (x *Import) Precision() int {
	return config.Get().Precision
}

func (x *Import) Stringify(v lua.LValue) string {
	return stringify(v)
}

func (x *Import) Info(args ...lua.LValue) {
	x.log.Info(join(args))
}

func (x *Import) Err(args ...lua.LValue) {
	x.log.PrintErr(join(args))
}

func (x *Import) check(err error) {
	check(x.l, err)
}

func join(args []lua.LValue) string {
	xs := make([]string, len(args))
	for i := range args {
		if s, ok := args[i].(lua.LString); ok {
			xs[i] = string(s)
			continue
		}
		xs[i] = stringify(args[i])
	}
	return strings.Join(xs, " ")
}

func check(l *lua.LState, err error) {
	if merry.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		l.RaiseError("%s", err)
	}
}
