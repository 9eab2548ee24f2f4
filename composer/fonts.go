package composer

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"bar-council-campaign/locale"
	"bar-council-campaign/models"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// FontSet holds the parsed regular and bold fonts. Parsed fonts are immutable and
// shared; faces are created per render because font.Face is not safe for concurrent use.
type FontSet struct {
	Regular *truetype.Font
	Bold    *truetype.Font
}

// DefaultFonts returns the embedded Go fonts, which keeps rendering identical across hosts
func DefaultFonts() (*FontSet, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &FontSet{Regular: regular, Bold: bold}, nil
}

// LoadFonts parses TTF files from disk. An empty path keeps the embedded default for
// that weight, so a Telugu-capable font can be configured for one or both weights.
func LoadFonts(regularPath, boldPath string) (*FontSet, error) {
	fonts, err := DefaultFonts()
	if err != nil {
		return nil, err
	}
	if regularPath != "" {
		if fonts.Regular, err = parseFontFile(regularPath); err != nil {
			return nil, err
		}
	}
	if boldPath != "" {
		if fonts.Bold, err = parseFontFile(boldPath); err != nil {
			return nil, err
		}
	}
	return fonts, nil
}

// MissingGlyphs lists, in first-seen order, the runes of texts that the regular or the
// bold font has no glyph for. Spaces and zero-width format runes are not drawn and are skipped.
func (f *FontSet) MissingGlyphs(texts ...string) []rune {
	seen := make(map[rune]bool)
	var missing []rune
	for _, text := range texts {
		for _, r := range text {
			if seen[r] || unicode.IsSpace(r) || unicode.Is(unicode.Cf, r) {
				continue
			}
			seen[r] = true
			if f.Regular.Index(r) == 0 || f.Bold.Index(r) == 0 {
				missing = append(missing, r)
			}
		}
	}
	return missing
}

// CheckCoverage fails when the fonts cannot draw the fixed card strings of every language
func (f *FontSet) CheckCoverage(langs ...models.Language) error {
	var problems []string
	for _, lang := range langs {
		if missing := f.MissingGlyphs(locale.Card(lang).Texts()...); len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("%s (%d characters, e.g. %q)", lang, len(missing), string(missing[0])))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("fonts cannot draw card text for %s; set FONT_REGULAR_PATH and FONT_BOLD_PATH to fonts covering these scripts",
			strings.Join(problems, ", "))
	}
	return nil
}

func parseFontFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}

type faceKey struct {
	size float64
	bold bool
}

// faceCache creates faces lazily for one render call
type faceCache struct {
	fonts *FontSet
	faces map[faceKey]font.Face
}

func newFaceCache(fonts *FontSet) *faceCache {
	return &faceCache{fonts: fonts, faces: make(map[faceKey]font.Face)}
}

func (c *faceCache) face(size float64, bold bool) font.Face {
	key := faceKey{size: size, bold: bold}
	if f, ok := c.faces[key]; ok {
		return f
	}
	src := c.fonts.Regular
	if bold {
		src = c.fonts.Bold
	}
	f := truetype.NewFace(src, &truetype.Options{Size: size, Hinting: font.HintingFull})
	c.faces[key] = f
	return f
}

func (c *faceCache) close() {
	for _, f := range c.faces {
		f.Close()
	}
}

// faceMeasurer measures strings with a single face
type faceMeasurer struct {
	face font.Face
}

func (m faceMeasurer) MeasureString(s string) (float64, float64) {
	w := font.MeasureString(m.face, s)
	return fixedToFloat(w), fixedToFloat(m.face.Metrics().Height)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
