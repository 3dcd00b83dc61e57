package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/spheres-go/internal/models"
	"gopkg.in/yaml.v3"
)

// Format selects the scene output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// Document is the exported form of an import.
type Document struct {
	Report     models.ImportReport `json:"report" yaml:"report"`
	Primitives []Primitive         `json:"primitives" yaml:"primitives"`
}

// WriteOptions configures Write.
type WriteOptions struct {
	Format Format
	// Color enables terminal colors for the text format
	Color bool
}

// Write encodes the document to w.
func Write(w io.Writer, doc Document, opts WriteOptions) error {
	if doc.Primitives == nil {
		doc.Primitives = []Primitive{}
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		return writeText(w, doc, opts.Color)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

func writeText(w io.Writer, doc Document, color bool) error {
	renderer := lipgloss.NewRenderer(w)
	swatch := func(c models.Color) string {
		if !color {
			return fmt.Sprintf("%-7s", c)
		}
		return renderer.NewStyle().
			Foreground(lipgloss.Color(c.Hex())).
			Render(fmt.Sprintf("● %-7s", c))
	}

	var b strings.Builder
	if len(doc.Primitives) > 0 {
		fmt.Fprintf(&b, "Spheres (%d):\n\n", len(doc.Primitives))
		for _, p := range doc.Primitives {
			fmt.Fprintf(&b, "- %s L%d  pos=(%.4f, %.4f, %.4f)  d=%.4f\n",
				swatch(p.Color), p.Level, p.Position.X, p.Position.Y, p.Position.Z, p.Diameter)
		}
		b.WriteString("\n")
	}

	summary := doc.Report.String()
	if color {
		summary = renderer.NewStyle().Bold(true).Render(summary)
	}
	b.WriteString(summary)
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}
