package extract

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
)

// officeLoader extracts text from Word and PowerPoint documents. Modern
// OOXML files (.docx, .pptx) are zip archives of XML parts; text lives in
// w:t (Word) and a:t (Drawing/PowerPoint) elements. Legacy binary files
// (.doc, .ppt) fall back to a printable-run salvage, which is enough for a
// summarization input.
type officeLoader struct{}

func (l *officeLoader) Load(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return salvageBinary(path)
	}
	defer zr.Close()

	var parts []*zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" || strings.HasPrefix(f.Name, "ppt/slides/slide") {
			parts = append(parts, f)
		}
	}
	// slide10.xml would sort before slide2.xml byte-wise; order by name
	// length first to keep slides in presentation order
	sort.Slice(parts, func(i, j int) bool {
		if len(parts[i].Name) != len(parts[j].Name) {
			return len(parts[i].Name) < len(parts[j].Name)
		}
		return parts[i].Name < parts[j].Name
	})

	segments := make([]string, 0, len(parts))
	for _, f := range parts {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		text, err := ooxmlText(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) != "" {
			segments = append(segments, text)
		}
	}
	return segments, nil
}

// ooxmlText walks one XML part collecting run text, inserting line breaks
// at paragraph boundaries.
func ooxmlText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
}

// salvageBinary pulls printable ASCII runs out of a legacy binary office
// file. Runs shorter than four characters are noise (field codes, OLE
// headers) and are dropped.
func salvageBinary(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	var run []byte
	flush := func() {
		if len(run) >= 4 {
			b.Write(run)
			b.WriteByte('\n')
		}
		run = run[:0]
	}
	for _, c := range data {
		if c == '\t' || (c >= 0x20 && c < 0x7f) || unicode.IsLetter(rune(c)) {
			run = append(run, c)
			continue
		}
		flush()
	}
	flush()
	return []string{b.String()}, nil
}
