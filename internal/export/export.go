// Package export writes antenna records to files of the format chosen by the
// file extension.
package export

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/antdata"
	"github.com/fpawel/antenna/internal/data"
	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/zstd"
)

var ErrUnsupportedFormat = merry.New("unsupported export format")

// CompressedExt appended to the name of a text format file compresses it
// with zstd, e.g. pattern.msi.zst.
const CompressedExt = ".zst"

type format struct {
	// write is set for the text formats, which also can be compressed
	write func(io.Writer, antdata.Specs) error
	read  func(io.Reader) (antdata.Specs, error)
	save  func(filename string, s antdata.Specs) error
	load  func(filename string) (antdata.Specs, error)
}

var formats = map[string]format{
	".msi":    {write: WriteMSI, read: ReadMSI},
	".csv":    {write: WriteCSV},
	".json":   {write: WriteJSON, read: ReadJSON},
	".yaml":   {write: WriteYAML, read: ReadYAML},
	".yml":    {write: WriteYAML, read: ReadYAML},
	".html":   {write: WriteHTML},
	".md":     {write: writeMarkdown},
	".sqlite": {save: SaveSQLite, load: loadSQLite},
	".db":     {save: SaveSQLite, load: loadSQLite},
	".png":    {save: SavePlot},
	".svg":    {save: SavePlot},
	".pdf":    {save: SavePlot},
}

func writeMarkdown(w io.Writer, s antdata.Specs) error {
	_, err := w.Write(Markdown(s))
	return err
}

// Extensions lists the supported file extensions.
func Extensions() []string {
	xs := make([]string, 0, len(formats))
	for ext := range formats {
		xs = append(xs, ext)
	}
	sort.Strings(xs)
	return xs
}

func Supported(filename string) bool {
	_, err := formatOf(filename)
	return err == nil
}

func formatOf(filename string) (format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	compressed := ext == CompressedExt
	if compressed {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(filename, filepath.Ext(filename))))
	}
	f, ok := formats[ext]
	if !ok {
		return f, ErrUnsupportedFormat.Here().WithMessagef("%s: expected one of %s",
			filename, strings.Join(Extensions(), ", "))
	}
	if compressed {
		if f.write == nil {
			return f, ErrUnsupportedFormat.Here().WithMessagef("%s: %s files can not be compressed", filename, ext)
		}
		return compressedFormat(f), nil
	}
	return f, nil
}

func compressedFormat(f format) format {
	r := format{
		write: func(w io.Writer, s antdata.Specs) error {
			enc, err := zstd.NewWriter(w)
			if err != nil {
				return err
			}
			if err := f.write(enc, s); err != nil {
				_ = enc.Close()
				return err
			}
			return enc.Close()
		},
	}
	if f.read != nil {
		r.read = func(rd io.Reader) (antdata.Specs, error) {
			dec, err := zstd.NewReader(rd)
			if err != nil {
				return antdata.Specs{}, err
			}
			defer dec.Close()
			return f.read(dec)
		}
	}
	return r
}

// ToFile writes the record rounded to precision decimal places, or exact
// when precision is negative.
func ToFile(filename string, s antdata.Specs, precision int) error {
	f, err := formatOf(filename)
	if err != nil {
		return err
	}
	s = s.Round(precision)
	if f.save != nil {
		err = f.save(filename, s)
	} else {
		var b bytes.Buffer
		if err = f.write(&b, s); err == nil {
			err = ioutil.WriteFile(filename, b.Bytes(), 0666)
		}
	}
	return merry.Prepend(err, filename)
}

// ToFiles writes the record to every file, continuing after a failure.
func ToFiles(filenames []string, s antdata.Specs, precision int) error {
	var mulErr error
	for _, filename := range filenames {
		if err := ToFile(filename, s, precision); err != nil {
			mulErr = multierror.Append(mulErr, err)
		}
	}
	return mulErr
}

// SaveSQLite appends the record to the antenna database.
func SaveSQLite(filename string, s antdata.Specs) error {
	db, err := data.Open(filename)
	if err != nil {
		return err
	}
	_, err = data.SaveSpecs(context.Background(), db, s)
	if errClose := db.Close(); err == nil {
		err = errClose
	}
	return err
}

// FromFile reads a record back from a file written by ToFile, the last
// saved one for a database. Only data formats can be read.
func FromFile(filename string) (antdata.Specs, error) {
	f, err := formatOf(filename)
	if err != nil {
		return antdata.Specs{}, err
	}
	if f.load != nil {
		return f.load(filename)
	}
	if f.read == nil {
		return antdata.Specs{}, ErrUnsupportedFormat.Here().WithMessagef("%s: can not be read", filename)
	}
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return antdata.Specs{}, err
	}
	s, err := f.read(bytes.NewReader(b))
	return s, merry.Prepend(err, filename)
}

func loadSQLite(filename string) (antdata.Specs, error) {
	db, err := data.Open(filename)
	if err != nil {
		return antdata.Specs{}, err
	}
	defer func() { _ = db.Close() }()
	ctx := context.Background()
	antennaID, err := data.GetLastAntennaID(ctx, db)
	if err != nil {
		return antdata.Specs{}, merry.Prepend(err, filename)
	}
	return data.GetSpecs(ctx, db, antennaID)
}
