package composer

import (
	"os"
	"strings"
	"testing"

	"bar-council-campaign/locale"
	"bar-council-campaign/models"
)

func TestDefaultFontsCoverEnglishOnly(t *testing.T) {
	fonts, err := DefaultFonts()
	if err != nil {
		t.Fatal(err)
	}

	if missing := fonts.MissingGlyphs(locale.Card(models.LanguageEnglish).Texts()...); len(missing) != 0 {
		t.Errorf("English card text missing glyphs %q", string(missing))
	}

	te := locale.Card(models.LanguageTelugu)
	missing := fonts.MissingGlyphs(te.Supporting)
	if len(missing) == 0 {
		t.Fatal("expected the Go fonts to lack Telugu glyphs")
	}
	for _, r := range missing {
		if r == ' ' {
			t.Error("spaces must not be reported")
		}
	}
}

func TestMissingGlyphsSkipsFormatRunes(t *testing.T) {
	fonts, err := DefaultFonts()
	if err != nil {
		t.Fatal(err)
	}
	// zero-width non-joiner and duplicate runes
	if missing := fonts.MissingGlyphs("ab\u200ccd", "ab"); len(missing) != 0 {
		t.Errorf("MissingGlyphs() = %q, want none", string(missing))
	}
	missing := fonts.MissingGlyphs("నన", "న")
	if len(missing) != 1 {
		t.Errorf("MissingGlyphs() = %q, want one rune", string(missing))
	}
}

func TestCheckCoverage(t *testing.T) {
	fonts, err := DefaultFonts()
	if err != nil {
		t.Fatal(err)
	}
	if err := fonts.CheckCoverage(models.LanguageEnglish); err != nil {
		t.Errorf("CheckCoverage(en) error = %v", err)
	}

	err = fonts.CheckCoverage(locale.Languages()...)
	if err == nil {
		t.Fatal("CheckCoverage(en, te) = nil, want error")
	}
	for _, want := range []string{"te (", "FONT_REGULAR_PATH", "FONT_BOLD_PATH"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
	if strings.Contains(err.Error(), "en (") {
		t.Errorf("error %q blames English", err)
	}
}

func TestLoadFontsTeluguCoverage(t *testing.T) {
	path := os.Getenv("TEST_TELUGU_FONT")
	if path == "" {
		t.Skip("TEST_TELUGU_FONT not set")
	}
	fonts, err := LoadFonts(path, path)
	if err != nil {
		t.Fatalf("LoadFonts() error = %v", err)
	}
	if missing := fonts.MissingGlyphs(locale.Card(models.LanguageTelugu).Texts()...); len(missing) != 0 {
		t.Errorf("Telugu font missing glyphs %q", string(missing))
	}
}
