package sink

import (
	"strings"

	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/errors"
)

// Format names an output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	allowed := make([]string, len(Formats))
	for i, f := range Formats {
		allowed[i] = string(f)
	}
	if err := errors.ValidateFormat(name, allowed...); err != nil {
		return "", err
	}
	return Format(name), nil
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// Ext returns the file extension of f, with the leading dot.
func (f Format) Ext() string { return "." + string(f) }

// Render renders l in format f. PNG options are ignored by the other formats.
func Render(l diagram.Layout, f Format, opts ...PNGOption) ([]byte, error) {
	switch f {
	case FormatSVG:
		return RenderSVG(l), nil
	case FormatJSON:
		return RenderJSON(l)
	case FormatPNG:
		return RenderPNG(l, opts...)
	case FormatPDF:
		return RenderPDF(l)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
}
