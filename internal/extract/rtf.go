package extract

import (
	"os"
	"strings"
)

// rtfLoader strips RTF control words and groups, keeping plain text.
type rtfLoader struct{}

// Destination groups whose contents are metadata, not document text.
var rtfSkipGroups = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"header":     true,
	"footer":     true,
}

func (l *rtfLoader) Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []string{stripRTF(string(data))}, nil
}

func stripRTF(s string) string {
	var b strings.Builder
	skipDepth := 0
	depth := 0
	i := 0
	for i < len(s) {
		c := s[i]
		switch c {
		case '{':
			depth++
			i++
		case '}':
			if skipDepth > 0 && depth == skipDepth {
				skipDepth = 0
			}
			depth--
			i++
		case '\\':
			word, param, next := rtfControl(s, i+1)
			i = next
			if skipDepth > 0 {
				continue
			}
			switch word {
			case "par", "line", "row":
				b.WriteByte('\n')
			case "tab", "cell":
				b.WriteByte(' ')
			case "'":
				// hex-escaped byte; emit as-is when printable ASCII
				if param >= 0x20 && param < 0x7f {
					b.WriteByte(byte(param))
				}
			default:
				if rtfSkipGroups[word] {
					skipDepth = depth
				}
			}
		default:
			if skipDepth == 0 && c != '\r' && c != '\n' {
				b.WriteByte(c)
			}
			i++
		}
	}
	return b.String()
}

// rtfControl parses a control word (or symbol) starting at i, returning the
// word, its numeric/hex parameter (-1 when absent) and the next offset.
func rtfControl(s string, i int) (word string, param int, next int) {
	param = -1
	if i >= len(s) {
		return "", param, i
	}
	// control symbol: single non-letter character
	if !isASCIILetter(s[i]) {
		if s[i] == '\'' && i+2 < len(s) {
			param = hexVal(s[i+1])<<4 | hexVal(s[i+2])
			return "'", param, i + 3
		}
		return string(s[i]), param, i + 1
	}
	start := i
	for i < len(s) && isASCIILetter(s[i]) {
		i++
	}
	word = s[start:i]
	// optional numeric parameter
	numStart := i
	if i < len(s) && (s[i] == '-' || (s[i] >= '0' && s[i] <= '9')) {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		n := 0
		neg := false
		for _, c := range s[numStart:i] {
			if c == '-' {
				neg = true
				continue
			}
			n = n*10 + int(c-'0')
		}
		if neg {
			n = -n
		}
		param = n
	}
	// a single space after a control word is part of the word
	if i < len(s) && s[i] == ' ' {
		i++
	}
	return word, param, i
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}
