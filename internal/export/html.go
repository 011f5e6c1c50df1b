package export

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/fpawel/antenna/internal/antdata"
	"github.com/fpawel/antenna/internal/pkg"
	"github.com/fpawel/antenna/internal/pkg/intrng"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// WriteHTML renders the record as an HTML datasheet.
func WriteHTML(w io.Writer, s antdata.Specs) error {
	var content bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert(Markdown(s), &content); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>"+
		"<style>body{font-family:sans-serif;max-width:900px;margin:0 auto;padding:1rem;} "+
		"table{border-collapse:collapse;} th,td{border:1px solid #a8a29e;padding:0.2rem 0.6rem;text-align:right;}"+
		"</style></head><body>%s</body></html>\n",
		html.EscapeString(s.Name), content.String())
	return err
}

// Markdown is the datasheet text of the record with GFM tables.
func Markdown(s antdata.Specs) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", mdEscape(s.Name))
	b.WriteString("| Parameter | Value |\n|---|---|\n")
	for _, x := range [][2]string{
		{"Make", s.Make},
		{"Frequency", s.Frequency.String() + " MHz"},
		{"H width", s.HWidth.String() + " deg"},
		{"V width", s.VWidth.String() + " deg"},
		{"Front to back", s.FrontToBack.String() + " dB"},
		{"Gain", pkg.FormatFloat(s.Gain, -1) + " dBi"},
		{"Tilt", pkg.FormatFloat(s.Tilt, -1) + " deg"},
		{"Polarization", s.Polarization},
		{"Comment", s.Comment},
	} {
		fmt.Fprintf(&b, "| %s | %s |\n", x[0], mdEscape(x[1]))
	}

	h, v := s.Horizontal.Undefined(), s.Vertical.Undefined()
	if len(h)+len(v) > 0 {
		b.WriteString("\n## Undefined gain\n\n")
		fmt.Fprintf(&b, "- horizontal: %s\n", formatRanges(h))
		fmt.Fprintf(&b, "- vertical: %s\n", formatRanges(v))
	}

	b.WriteString("\n## Patterns\n\n| Angle, deg | Horizontal loss, dB | Vertical loss, dB |\n|---:|---:|---:|\n")
	n := len(s.Horizontal)
	if len(s.Vertical) > n {
		n = len(s.Vertical)
	}
	for i := 0; i < n; i++ {
		angle, hLoss, vLoss := i, "", ""
		if i < len(s.Horizontal) {
			angle, hLoss = s.Horizontal[i].Angle, s.Horizontal[i].Loss.String()
		}
		if i < len(s.Vertical) {
			angle, vLoss = s.Vertical[i].Angle, s.Vertical[i].Loss.String()
		}
		fmt.Fprintf(&b, "| %d | %s | %s |\n", angle, hLoss, vLoss)
	}
	return b.Bytes()
}

func formatRanges(angles []int) string {
	if len(angles) == 0 {
		return "none"
	}
	var xs []string
	for _, r := range intrng.Ranges(angles) {
		if r[0] == r[1] {
			xs = append(xs, fmt.Sprintf("%d", r[0]))
		} else {
			xs = append(xs, fmt.Sprintf("%d-%d", r[0], r[1]))
		}
	}
	return strings.Join(xs, ", ") + " deg"
}

var mdReplacer = strings.NewReplacer("|", `\|`, "<", "&lt;", ">", "&gt;")

func mdEscape(s string) string {
	return mdReplacer.Replace(s)
}
