package style

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/labelwires/pkg/connection"
	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
)

// Renderer turns connections and errors into output text.
type Renderer interface {
	RenderConnections(conns []connection.Connection) string
	RenderConnection(c connection.Connection) string
	RenderError(err error) string
	RenderMessage(markup string) string
}

// NewRenderer returns the renderer for a concrete format. FormatAuto is
// treated as text; call Resolve first.
func NewRenderer(f Format) Renderer {
	switch f {
	case FormatTerminal:
		return NewTerminalRenderer()
	case FormatJSON:
		return &JSONRenderer{}
	default:
		return &PlainRenderer{}
	}
}

// ShortID is the ID prefix shown in listings and accepted by commands.
func ShortID(c connection.Connection) string {
	return c.ID.String()[:8]
}

// TerminalRenderer renders with colors and alignment.
type TerminalRenderer struct {
	markup *MarkupParser
}

func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{markup: NewMarkupParser(false)}
}

func (r *TerminalRenderer) RenderConnections(conns []connection.Connection) string {
	if len(conns) == 0 {
		return MutedStyle.Render("No connections")
	}

	srcWidth := 0
	for _, c := range conns {
		src, _ := c.Tuple()
		srcWidth = max(srcWidth, lipgloss.Width(src))
	}
	numWidth := len(fmt.Sprint(len(conns)))

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(fmt.Sprintf("Connections (%d)", len(conns))) + "\n\n")
	for i, c := range conns {
		src, dst := c.Tuple()
		line := fmt.Sprintf("%*d  %s  %s %s %s",
			numWidth, i+1,
			IDStyle.Render(ShortID(c)),
			SourceStyle.Width(srcWidth).Render(src),
			LinkIndicator,
			DestinationStyle.Render(dst))
		sb.WriteString(Indent(line, 1) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *TerminalRenderer) RenderConnection(c connection.Connection) string {
	src, dst := c.Tuple()
	return fmt.Sprintf("%s %s %s  %s",
		SourceStyle.Render(src), LinkIndicator, DestinationStyle.Render(dst), IDStyle.Render(ShortID(c)))
}

func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	if code := lwerrors.GetErrorCode(err); code != lwerrors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(code)),
			err.Error())
	}
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

func (r *TerminalRenderer) RenderMessage(markup string) string {
	return r.markup.Render(markup)
}

// PlainRenderer renders without styling.
type PlainRenderer struct{}

func (r *PlainRenderer) RenderConnections(conns []connection.Connection) string {
	if len(conns) == 0 {
		return "No connections"
	}
	var sb strings.Builder
	for i, c := range conns {
		src, dst := c.Tuple()
		fmt.Fprintf(&sb, "%d\t%s\t%s\t%s\n", i+1, ShortID(c), src, dst)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *PlainRenderer) RenderConnection(c connection.Connection) string {
	src, dst := c.Tuple()
	return fmt.Sprintf("%s | %s (%s)", src, dst, ShortID(c))
}

func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

func (r *PlainRenderer) RenderMessage(markup string) string {
	return NewMarkupParser(true).Render(markup)
}

// JSONRenderer renders machine-readable output. Unlike the connection
// file, listings carry the ID.
type JSONRenderer struct{}

func toJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

func (r *JSONRenderer) RenderConnections(conns []connection.Connection) string {
	out := make([]map[string]string, 0, len(conns))
	for _, c := range conns {
		out = append(out, jsonRecord(c))
	}
	return toJSON(out)
}

func (r *JSONRenderer) RenderConnection(c connection.Connection) string {
	return toJSON(jsonRecord(c))
}

func (r *JSONRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return toJSON(map[string]interface{}{
		"error":   err.Error(),
		"code":    string(lwerrors.GetErrorCode(err)),
		"details": lwerrors.GetErrorDetails(err),
	})
}

func (r *JSONRenderer) RenderMessage(markup string) string {
	return toJSON(map[string]string{"message": NewMarkupParser(true).Render(markup)})
}

func jsonRecord(c connection.Connection) map[string]string {
	rec := map[string]string{"id": c.ID.String()}
	for i, v := range c.Values() {
		rec[connection.Fields[i]] = v
	}
	return rec
}
