// Package share renders budgets as plain text and hands that text to a
// platform share mechanism, falling back to the clipboard.
package share

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/theirongolddev/bcalc/internal/budget"
	"github.com/theirongolddev/bcalc/internal/cli"
)

// namePad is how many dots separate the longest name from its amount.
const namePad = 5

// Render formats b as share text. Each expense name is padded with dots to
// the longest name plus namePad, so amounts line up in a monospace font.
func Render(b budget.Budget, product string) string {
	width := 0
	for _, e := range b.Expenses {
		if n := utf8.RuneCountInString(e.Name); n > width {
			width = n
		}
	}
	width += namePad

	var sb strings.Builder
	fmt.Fprintf(&sb, "📘 *Budget:* %s\n", b.Title)
	fmt.Fprintf(&sb, "📅 *Date:* %s\n\n", b.Date)
	for _, e := range b.Expenses {
		sb.WriteString(e.Name)
		sb.WriteString(strings.Repeat(".", width-utf8.RuneCountInString(e.Name)))
		sb.WriteString(cli.FormatAmount(e.Amount))
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "\n💰 *Total:* %s\n", cli.FormatAmount(b.Total))
	fmt.Fprintf(&sb, "— Shared from %s Budget Calculator", product)
	return sb.String()
}

// componentEscaper turns query escaping into URI component escaping: spaces
// become %20 and the marks !*'() stay literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// WhatsAppURL returns a wa.me link that opens a chat with text prefilled.
func WhatsAppURL(text string) string {
	return "https://wa.me/?text=" + componentEscaper.Replace(url.QueryEscape(text))
}
