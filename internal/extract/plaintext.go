package extract

import (
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// textLoader reads a plain-text (or HTML-ish) file as a single segment.
type textLoader struct{}

func (l *textLoader) Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []string{string(data)}, nil
}

// stripHTML drops markup and returns the text content. Non-HTML input
// passes through unchanged apart from tag-like sequences.
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tok.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "script", "style":
				// skip contents of non-text elements
				if tt == html.StartTagToken {
					skipElement(tok, string(name))
				}
			case "p", "br", "div", "li", "tr":
				b.WriteByte('\n')
			}
		}
	}
}

func skipElement(tok *html.Tokenizer, name string) {
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			return
		}
		if tt == html.EndTagToken {
			n, _ := tok.TagName()
			if string(n) == name {
				return
			}
		}
	}
}

// cleanText normalizes unicode (NFKC) and collapses runs of whitespace so
// that downstream token counting is stable across sources.
func cleanText(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
