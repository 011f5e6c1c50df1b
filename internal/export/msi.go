package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
	"github.com/fpawel/antenna/internal/antdata"
	"github.com/fpawel/antenna/internal/pkg"
)

// MSI Planet keywords in the order they are written.
const (
	msiName         = "NAME"
	msiMake         = "MAKE"
	msiFrequency    = "FREQUENCY"
	msiHWidth       = "H_WIDTH"
	msiVWidth       = "V_WIDTH"
	msiFrontToBack  = "FRONT_TO_BACK"
	msiGain         = "GAIN"
	msiTilt         = "TILT"
	msiPolarization = "POLARIZATION"
	msiComment      = "COMMENT"
	msiHorizontal   = "HORIZONTAL"
	msiVertical     = "VERTICAL"
)

// WriteMSI writes the record in MSI Planet antenna file format. Pattern points
// at 360 deg are omitted since they repeat 0 deg.
func WriteMSI(w io.Writer, s antdata.Specs) error {
	bw := bufio.NewWriter(w)
	for _, line := range [][2]string{
		{msiName, s.Name},
		{msiMake, s.Make},
		{msiFrequency, s.Frequency.String() + " MHz"},
		{msiHWidth, s.HWidth.String() + " Deg."},
		{msiVWidth, s.VWidth.String() + " Deg."},
		{msiFrontToBack, s.FrontToBack.String() + " dB"},
		{msiGain, pkg.FormatFloat(s.Gain, -1) + " dBi"},
		{msiTilt, pkg.FormatFloat(s.Tilt, -1) + " Deg."},
		{msiPolarization, s.Polarization},
		{msiComment, s.Comment},
	} {
		if _, err := fmt.Fprintf(bw, "%s %s\n", line[0], line[1]); err != nil {
			return err
		}
	}
	for _, x := range []struct {
		keyword string
		pattern antdata.Pattern
	}{
		{msiHorizontal, s.Horizontal},
		{msiVertical, s.Vertical},
	} {
		if _, err := fmt.Fprintf(bw, "%s 360\n", x.keyword); err != nil {
			return err
		}
		for _, p := range x.pattern {
			if p.Angle < 0 || p.Angle >= 360 {
				continue
			}
			if _, err := fmt.Fprintf(bw, "%d %s\n", p.Angle, p.Loss); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadMSI parses an MSI Planet antenna file. The 360 deg point of each plane
// is restored from the 0 deg point.
func ReadMSI(r io.Reader) (antdata.Specs, error) {
	s := antdata.Specs{
		Frequency:   antdata.NA,
		HWidth:      antdata.NA,
		VWidth:      antdata.NA,
		FrontToBack: antdata.NA,
	}
	var (
		pattern *antdata.Pattern
		points  int
		lineNo  int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := readMSILine(&s, line, &pattern, &points); err != nil {
			return s, merry.Prependf(err, "line %d", lineNo)
		}
	}
	if err := sc.Err(); err != nil {
		return s, err
	}
	if points != 0 {
		return s, merry.Errorf("unexpected end of pattern: %d points missing", points)
	}
	for _, p := range []*antdata.Pattern{&s.Horizontal, &s.Vertical} {
		xs := *p
		if len(xs) > 0 && xs[0].Angle == 0 && xs[len(xs)-1].Angle == 359 {
			*p = append(xs, antdata.Point{Angle: 360, Loss: xs[0].Loss})
		}
	}
	return s, nil
}

func readMSILine(s *antdata.Specs, line string, pattern **antdata.Pattern, points *int) error {
	if *points > 0 {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return merry.Errorf("expected angle and loss, got %q", line)
		}
		angle, err := strconv.Atoi(fields[0])
		if err != nil {
			return merry.Prependf(err, "angle")
		}
		loss, err := antdata.ParseNullFloat(fields[1])
		if err != nil {
			return merry.Prepend(err, "loss")
		}
		**pattern = append(**pattern, antdata.Point{Angle: angle, Loss: loss})
		*points--
		return nil
	}

	keyword, value := line, ""
	if n := strings.IndexAny(line, " \t"); n >= 0 {
		keyword, value = line[:n], strings.TrimSpace(line[n+1:])
	}
	var err error
	switch strings.ToUpper(keyword) {
	case msiName:
		s.Name = value
	case msiMake:
		s.Make = value
	case msiPolarization:
		s.Polarization = value
	case msiComment:
		s.Comment = value
	case msiFrequency:
		s.Frequency, err = parseMSIValue(value)
	case msiHWidth:
		s.HWidth, err = parseMSIValue(value)
	case msiVWidth:
		s.VWidth, err = parseMSIValue(value)
	case msiFrontToBack:
		s.FrontToBack, err = parseMSIValue(value)
	case msiGain:
		var v antdata.NullFloat
		v, err = parseMSIValue(value)
		s.Gain = v.Float64
	case msiTilt:
		var v antdata.NullFloat
		v, err = parseMSIValue(value)
		s.Tilt = v.Float64
	case msiHorizontal, msiVertical:
		*points, err = strconv.Atoi(strings.Fields(value + " 0")[0])
		if err != nil {
			return merry.Prependf(err, "%s points count", keyword)
		}
		*pattern = &s.Horizontal
		if strings.ToUpper(keyword) == msiVertical {
			*pattern = &s.Vertical
		}
		**pattern = make(antdata.Pattern, 0, *points+1)
	default:
		return merry.Errorf("unknown keyword %q", keyword)
	}
	return merry.Prepend(err, keyword)
}

// parseMSIValue parses the number in front of an optional unit.
func parseMSIValue(value string) (antdata.NullFloat, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return antdata.NA, nil
	}
	return antdata.ParseNullFloat(fields[0])
}
