package worklua

import (
	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/antdata"
	"github.com/fpawel/antenna/internal/config"
	"github.com/fpawel/antenna/internal/export"
	"github.com/fpawel/antenna/internal/pkg"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"
)

type luaAntenna struct {
	Name  string
	Title string

	m   antdata.Model
	imp *Import
}

type exportOptions struct {
	File      string
	Files     []string
	Precision *int
}

func (x *luaAntenna) Configure(t *lua.LTable) {
	v, err := tableToValues(t)
	x.check(err)
	x.check(x.m.Configure(v))
	x.imp.log.Debug("configured", "model", x.Name, "params", v)
}

// Gain returns nil where the gain is undefined.
func (x *luaAntenna) Gain(t *lua.LTable) lua.LValue {
	v, err := tableToValues(t)
	x.check(err)
	g, err := x.m.Gain(v)
	x.check(err)
	return toLuaValue(x.imp.l, g)
}

// Arguments lists the names a gain query requires.
func (x *luaAntenna) Arguments() *lua.LTable {
	t := x.imp.l.NewTable()
	for _, name := range x.m.Arguments() {
		t.Append(lua.LString(name))
	}
	return t
}

func (x *luaAntenna) Params() *lua.LTable {
	p, err := x.m.Params()
	x.check(err)
	return toLuaValue(x.imp.l, p).(*lua.LTable)
}

// Specs returns the record as a table with the field names of the JSON
// export, undefined losses being "n/a".
func (x *luaAntenna) Specs() *lua.LTable {
	s, err := x.m.Specs()
	x.check(err)
	m, err := pkg.StructToMap(s)
	x.check(err)
	return toLuaValue(x.imp.l, m).(*lua.LTable)
}

// Export writes the record to a file given by name or by an options table
// {file=..., files={...}, precision=...}.
func (x *luaAntenna) Export(arg lua.LValue) {
	opts := exportOptions{}
	switch arg := arg.(type) {
	case lua.LString:
		opts.File = string(arg)
	case *lua.LTable:
		x.check(gluamapper.Map(arg, &opts))
	default:
		x.imp.l.ArgError(1, "file name or table expected")
	}
	filenames := opts.Files
	if opts.File != "" {
		filenames = append([]string{opts.File}, filenames...)
	}
	if len(filenames) == 0 {
		x.imp.l.ArgError(1, "no file to export")
	}
	precision := config.Get().Precision
	if opts.Precision != nil {
		precision = *opts.Precision
	}
	s, err := x.m.Specs()
	x.check(err)
	x.check(merry.Prepend(export.ToFiles(filenames, s, precision), x.Name))
	for _, filename := range filenames {
		x.imp.log.Debug("exported", "model", x.Name, "file", filename)
	}
}

func (x *luaAntenna) check(err error) {
	x.imp.check(err)
}
