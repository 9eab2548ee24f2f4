package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// jpegQuality is used when a card is downloaded as JPEG
const jpegQuality = 92

// CardFormat is the encoding a card is delivered in
type CardFormat string

const (
	CardFormatPNG  CardFormat = "png"
	CardFormatJPEG CardFormat = "jpeg"
)

// ParseCardFormat maps a query value to a format. Unknown values fall back to PNG.
func ParseCardFormat(value string) CardFormat {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "jpeg", "jpg":
		return CardFormatJPEG
	default:
		return CardFormatPNG
	}
}

// ContentType returns the MIME type of the format
func (f CardFormat) ContentType() string {
	if f == CardFormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Extension returns the file extension without the dot
func (f CardFormat) Extension() string {
	if f == CardFormatJPEG {
		return "jpg"
	}
	return "png"
}

// ConvertCard re-encodes a PNG card into the requested format.
// PNG input is returned unchanged.
func ConvertCard(pngData []byte, format CardFormat) ([]byte, error) {
	if format != CardFormatJPEG {
		return pngData, nil
	}

	img, err := imaging.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode card: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
