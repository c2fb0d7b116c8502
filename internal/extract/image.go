package extract

import (
	"bytes"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// imageLoader runs OCR over an uploaded image (jpg, jpeg, png, gif).
// Requires a tesseract installation at runtime.
type imageLoader struct{}

func (l *imageLoader) Load(path string) ([]string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetImage(path); err != nil {
		return nil, err
	}
	text, err := client.Text()
	if err != nil {
		return nil, err
	}
	return []string{text}, nil
}

// ocrImage recognizes text in an already-decoded image, used by the PDF
// fallback for rendered pages.
func ocrImage(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", err
	}
	return client.Text()
}
