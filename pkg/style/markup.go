package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with the package styles.
type MarkupParser struct {
	styles map[string]lipgloss.Style
	plain  bool
}

// NewMarkupParser creates a parser with the default tags. A plain parser
// strips tags without styling.
func NewMarkupParser(plain bool) *MarkupParser {
	return &MarkupParser{
		plain: plain,
		styles: map[string]lipgloss.Style{
			"title":   TitleStyle,
			"success": SuccessStyle,
			"error":   ErrorStyle,
			"warning": WarningStyle,
			"info":    InfoStyle,
			"code":    CodeStyle,
			"path":    PathStyle,
			"muted":   MutedStyle,
			"bold":    lipgloss.NewStyle().Bold(true),
			"src":     SourceStyle,
			"dst":     DestinationStyle,
		},
	}
}

// Render replaces every known tag pair with its styled content. Tags may
// nest; unknown tags are left alone.
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		before := result
		for tag, st := range p.styles {
			pattern := regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				sub := pattern.FindStringSubmatch(match)
				if len(sub) != 2 {
					return match
				}
				if p.plain {
					return sub[1]
				}
				return st.Render(sub[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// RenderTemplate substitutes {{key}} placeholders, then renders markup.
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return p.Render(result)
}
