package extract

import (
	"bytes"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// minTextLayerLen is the threshold below which a PDF is assumed to be a
// scanned/image-only document and the layout-aware fallback kicks in.
const minTextLayerLen = 10

// pdfLoader extracts PDF text in two tiers: a fast text-layer pass first,
// then a slower MuPDF pass (with per-page image OCR) for scanned PDFs.
// The two-tier policy trades cost for quality and must stay in this order.
type pdfLoader struct{}

func (l *pdfLoader) Load(path string) ([]string, error) {
	segments, err := textLayer(path)
	if err == nil && totalLen(segments) >= minTextLayerLen {
		return segments, nil
	}
	return l.layoutFallback(path)
}

// textLayer pulls the embedded text layer page by page.
func textLayer(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return nil, err
	}
	return []string{buf.String()}, nil
}

// layoutFallback walks the document with MuPDF. Pages without extractable
// text are rendered and run through OCR; OCR failures skip the page rather
// than failing the whole document.
func (l *pdfLoader) layoutFallback(path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	segments := make([]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) != "" {
			segments = append(segments, text)
			continue
		}
		img, err := doc.Image(n)
		if err != nil {
			continue
		}
		if ocrText, err := ocrImage(img); err == nil && ocrText != "" {
			segments = append(segments, ocrText)
		}
	}
	return segments, nil
}

func totalLen(segments []string) int {
	n := 0
	for _, s := range segments {
		n += len(strings.TrimSpace(s))
	}
	return n
}
