package heatmap

import (
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	htmlfmt "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Spans only, inline styles: the output is embedded inside our own
// row markup, so chroma must not wrap it in <pre> or rely on a
// stylesheet of its own.
var hlFormatter = htmlfmt.New(
	htmlfmt.PreventSurroundingPre(true),
	htmlfmt.WithClasses(false),
)

var hlStyle = func() *chroma.Style {
	if s := styles.Get("github"); s != nil {
		return s
	}
	return styles.Fallback
}()

// Highlight renders one raw source line as syntax-highlighted markup,
// keyed by chroma lexer name. It is total: unknown languages fall back
// to the plain-text lexer, and any tokenizer error falls back to the
// escaped raw text.
func Highlight(language, text string) template.HTML {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	var buf strings.Builder
	if err := hlFormatter.Format(&buf, hlStyle, it); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}
