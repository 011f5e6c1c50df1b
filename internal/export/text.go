package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/fpawel/antenna/internal/antdata"
	"github.com/fpawel/antenna/internal/pkg"
	"gopkg.in/yaml.v3"
)

func WriteJSON(w io.Writer, s antdata.Specs) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(s)
}

func ReadJSON(r io.Reader) (s antdata.Specs, err error) {
	err = json.NewDecoder(r).Decode(&s)
	return
}

func WriteYAML(w io.Writer, s antdata.Specs) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func ReadYAML(r io.Reader) (s antdata.Specs, err error) {
	err = yaml.NewDecoder(r).Decode(&s)
	return
}

// WriteCSV writes one key, value row per record field followed by plane,
// angle, loss rows of both patterns.
func WriteCSV(w io.Writer, s antdata.Specs) error {
	cw := csv.NewWriter(w)
	for _, row := range [][]string{
		{"name", s.Name},
		{"make", s.Make},
		{"frequency", s.Frequency.String()},
		{"h_width", s.HWidth.String()},
		{"v_width", s.VWidth.String()},
		{"front_to_back", s.FrontToBack.String()},
		{"gain", pkg.FormatFloat(s.Gain, -1)},
		{"tilt", pkg.FormatFloat(s.Tilt, -1)},
		{"polarization", s.Polarization},
		{"comment", s.Comment},
	} {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	for _, x := range []struct {
		plane   string
		pattern antdata.Pattern
	}{
		{"horizontal", s.Horizontal},
		{"vertical", s.Vertical},
	} {
		for _, p := range x.pattern {
			if err := cw.Write([]string{x.plane, strconv.Itoa(p.Angle), p.Loss.String()}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
