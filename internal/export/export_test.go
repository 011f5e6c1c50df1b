package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/antdata"
	"github.com/fpawel/antenna/internal/anttypes"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modelSpecs(t *testing.T, name string) antdata.Specs {
	t.Helper()
	v, err := anttypes.Example(name)
	require.NoError(t, err)
	m, err := anttypes.Configured(name, v)
	require.NoError(t, err)
	s, err := m.Specs()
	require.NoError(t, err)
	return s
}

func TestWriteMSI(t *testing.T) {
	s := antdata.Specs{
		Name:         "test",
		Make:         "ITU",
		Frequency:    antdata.Float(23000),
		HWidth:       antdata.Float(1.5),
		VWidth:       antdata.NA,
		FrontToBack:  antdata.NA,
		Gain:         38.25,
		Polarization: "n/a",
		Comment:      "D/lambda: 20.01",
	}
	for i := 0; i < antdata.PatternSize; i++ {
		s.Horizontal = append(s.Horizontal, antdata.Point{Angle: i, Loss: antdata.Float(float64(i % 360 % 7))})
		s.Vertical = append(s.Vertical, antdata.Point{Angle: i, Loss: antdata.NA})
	}
	var b bytes.Buffer
	require.NoError(t, WriteMSI(&b, s))
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 10+2+2*360)
	assert.Equal(t, []string{
		"NAME test",
		"MAKE ITU",
		"FREQUENCY 23000 MHz",
		"H_WIDTH 1.5 Deg.",
		"V_WIDTH n/a Deg.",
		"FRONT_TO_BACK n/a dB",
		"GAIN 38.25 dBi",
		"TILT 0 Deg.",
		"POLARIZATION n/a",
		"COMMENT D/lambda: 20.01",
		"HORIZONTAL 360",
		"0 0",
		"1 1",
	}, lines[:13])
	assert.Equal(t, "359 2", lines[370])
	assert.Equal(t, "VERTICAL 360", lines[371])
	assert.Equal(t, "0 n/a", lines[372])
	assert.Equal(t, "359 n/a", lines[len(lines)-1])

	got, err := ReadMSI(&b)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestMSIRoundTrip(t *testing.T) {
	for _, name := range anttypes.Names() {
		s := modelSpecs(t, name)
		var b bytes.Buffer
		require.NoError(t, WriteMSI(&b, s))
		got, err := ReadMSI(&b)
		require.NoError(t, err)
		assert.Equal(t, s, got, name)
	}
}

func TestReadMSIErrors(t *testing.T) {
	for _, text := range []string{
		"NAME x\nBEAMWIDTH 3\n",
		"NAME x\nGAIN high dBi\n",
		"HORIZONTAL 360\n0 1\n1 2\n",
		"HORIZONTAL 2\n0 1\n1\n",
		"HORIZONTAL many\n",
		"VERTICAL 1\nx 1\n",
	} {
		_, err := ReadMSI(strings.NewReader(text))
		assert.Error(t, err, text)
	}
	s, err := ReadMSI(strings.NewReader("NAME x y\n\nfrequency 100\nHORIZONTAL 0\n"))
	require.NoError(t, err)
	assert.Equal(t, "x y", s.Name)
	assert.Equal(t, antdata.Float(100), s.Frequency)
	assert.Empty(t, s.Horizontal)
}

func TestJSONYAMLRoundTrip(t *testing.T) {
	s := modelSpecs(t, "ITUS465")
	var b bytes.Buffer
	require.NoError(t, WriteJSON(&b, s))
	assert.Contains(t, b.String(), `"loss": "n/a"`)
	got, err := ReadJSON(&b)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	b.Reset()
	require.NoError(t, WriteYAML(&b, s))
	assert.Contains(t, b.String(), "front_to_back: n/a\n")
	got, err = ReadYAML(&b)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestWriteCSV(t *testing.T) {
	s := modelSpecs(t, "ITUF699")
	var b bytes.Buffer
	require.NoError(t, WriteCSV(&b, s))
	r := csv.NewReader(&b)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 10+2*antdata.PatternSize)
	assert.Equal(t, []string{"name", "ITU-R F.699-8"}, rows[0])
	assert.Equal(t, []string{"gain", "48"}, rows[6])
	assert.Equal(t, []string{"horizontal", "0", "0"}, rows[10])
	assert.Equal(t, []string{"vertical", "360", "0"}, rows[len(rows)-1])
}

func TestWriteHTML(t *testing.T) {
	s := modelSpecs(t, "ITUS465")
	var b bytes.Buffer
	require.NoError(t, WriteHTML(&b, s))
	text := b.String()
	assert.True(t, strings.HasPrefix(text, "<!doctype html>"))
	assert.Contains(t, text, "<h1>ITU-R S.465-6</h1>")
	assert.Contains(t, text, "<table>")
	assert.Contains(t, text, "Undefined gain")
	assert.Contains(t, text, "horizontal: 0-1, 359-360 deg")
	assert.Contains(t, text, "+/-1.25 deg.")
}

func TestFormatRanges(t *testing.T) {
	assert.Equal(t, "none", formatRanges(nil))
	assert.Equal(t, "5 deg", formatRanges([]int{5}))
	assert.Equal(t, "0-2, 7, 358-360 deg", formatRanges([]int{0, 1, 2, 7, 358, 359, 360}))
}

func TestToFiles(t *testing.T) {
	dir := t.TempDir()
	s := modelSpecs(t, "ITUF1336s")
	good := []string{"a.msi", "a.json", "a.yaml", "a.csv", "a.html", "a.md", "a.sqlite", "a.png", "a.svg"}
	var filenames []string
	for _, name := range append(good, "a.docx", "a") {
		filenames = append(filenames, filepath.Join(dir, name))
	}
	err := ToFiles(filenames, s, 2)
	require.Error(t, err)
	mulErr, ok := err.(*multierror.Error)
	require.True(t, ok, "%T", err)
	require.Len(t, mulErr.Errors, 2)
	for _, err := range mulErr.Errors {
		assert.True(t, merry.Is(err, ErrUnsupportedFormat), "%v", err)
	}
	for _, name := range good {
		fi, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.True(t, fi.Size() > 0, name)
	}

	want := s.Round(2)
	for _, name := range []string{"a.msi", "a.json", "a.yaml", "a.sqlite"} {
		got, err := FromFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err = FromFile(filepath.Join(dir, "a.png"))
	assert.True(t, merry.Is(err, ErrUnsupportedFormat), "%v", err)
}

func TestToFileExact(t *testing.T) {
	dir := t.TempDir()
	s := modelSpecs(t, "ITUF1245")
	filename := filepath.Join(dir, "x.JSON")
	require.True(t, Supported(filename))
	require.NoError(t, ToFile(filename, s, -1))
	got, err := FromFile(filename)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestPlotRange(t *testing.T) {
	s := modelSpecs(t, "ITUF699")
	assert.Equal(t, 60.0, plotRange(s))
	assert.Equal(t, float64(minPlotRange), plotRange(antdata.Specs{}))

	p := polar(antdata.Pattern{
		{Angle: 0, Loss: antdata.Float(0)},
		{Angle: 90, Loss: antdata.Float(50)},
		{Angle: 180, Loss: antdata.NA},
	}, 40)
	require.Len(t, p, 2)
	assert.InDelta(t, 40, p[0].Y, 1e-12)
	assert.InDelta(t, 0, p[1].X, 1e-12)
}

func TestCompressed(t *testing.T) {
	dir := t.TempDir()
	s := modelSpecs(t, "ITUS580")
	for _, name := range []string{"a.msi.zst", "a.json.ZST", "a.yaml.zst"} {
		filename := filepath.Join(dir, name)
		require.True(t, Supported(filename), name)
		require.NoError(t, ToFile(filename, s, 3), name)
		b, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, b[:4], "zstd magic number")
		got, err := FromFile(filename)
		require.NoError(t, err, name)
		assert.Equal(t, s.Round(3), got, name)
	}

	filename := filepath.Join(dir, "a.csv.zst")
	require.NoError(t, ToFile(filename, s, 3))
	_, err := FromFile(filename)
	assert.True(t, merry.Is(err, ErrUnsupportedFormat), "%v", err)

	for _, name := range []string{"a.png.zst", "a.sqlite.zst", "a.zst"} {
		assert.False(t, Supported(name), name)
		err := ToFile(filepath.Join(dir, name), s, 3)
		assert.True(t, merry.Is(err, ErrUnsupportedFormat), "%v", err)
	}
}
