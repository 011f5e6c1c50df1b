// Package cfgfile stores a settings value in a file next to the executable.
package cfgfile

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ansel1/merry"
)

type MarshalFunc = func(in interface{}) (out []byte, err error)
type UnmarshalFunc = func(in []byte, out interface{}) error

type F struct {
	name      string
	dir       string
	marshal   MarshalFunc
	unmarshal UnmarshalFunc
}

func New(name string, marshal MarshalFunc, unmarshal UnmarshalFunc) *F {
	return &F{
		name:      name,
		marshal:   marshal,
		unmarshal: unmarshal,
	}
}

// InDir returns a copy of x stored in dir instead of the executable's directory.
func (x *F) InDir(dir string) *F {
	r := *x
	r.dir = dir
	return &r
}

func (x *F) Set(in interface{}) error {
	data, err := x.marshal(in)
	if err != nil {
		return x.err(err)
	}
	if err := ioutil.WriteFile(x.Filename(), data, 0666); err != nil {
		return x.err(err)
	}
	return nil
}

// Get reads the file into out. It reports false with no error when the file
// does not exist yet.
func (x *F) Get(out interface{}) (bool, error) {
	data, err := ioutil.ReadFile(x.Filename())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, x.err(err)
	}
	if err := x.unmarshal(data, out); err != nil {
		return false, x.err(err)
	}
	return true, nil
}

func (x *F) err(err error) error {
	return merry.Append(err, x.Filename())
}

func (x *F) Filename() string {
	dir := x.dir
	if dir == "" {
		dir = filepath.Dir(os.Args[0])
	}
	return filepath.Join(dir, x.name)
}
