// Package htmltext flattens the HTML fragments Canvas returns in
// descriptions into plain text suitable for single-line display.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags start a new line when converted to text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "ul": true, "ol": true, "blockquote": true,
}

// rawTags carry no prose; their content is dropped entirely.
var rawTags = map[string]bool{
	"script": true, "style": true,
}

// Flatten strips tags from an HTML fragment, decodes entities, and
// collapses runs of whitespace. Block-level tags become single spaces
// so adjacent paragraphs don't run together; script and style content
// is dropped.
func Flatten(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := ""

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed trailing markup; either way the
			// collected text is all there is.
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			if skip == "" {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case rawTags[tag]:
				if skip == tag {
					skip = ""
				} else if skip == "" {
					skip = tag
				}
			case blockTags[tag]:
				b.WriteByte(' ')
			}
		}
	}
}

// Summary flattens an HTML fragment and truncates it to at most max
// runes, appending an ellipsis when content was cut. Used for table
// cells where the layout engine expects a single short line.
func Summary(s string, max int) string {
	text := Flatten(s)
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return strings.TrimRight(string(runes[:max-3]), " ") + "..."
}
