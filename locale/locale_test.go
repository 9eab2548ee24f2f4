package locale

import (
	"reflect"
	"testing"

	"bar-council-campaign/models"
)

// emptyStringFields returns the names of string fields that are blank, including
// blank entries of string slices
func emptyStringFields(v interface{}) []string {
	var empty []string
	rv := reflect.ValueOf(v)
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		switch field.Kind() {
		case reflect.String:
			if field.String() == "" {
				empty = append(empty, rt.Field(i).Name)
			}
		case reflect.Slice:
			if field.Len() == 0 {
				empty = append(empty, rt.Field(i).Name)
			}
			for j := 0; j < field.Len(); j++ {
				if field.Index(j).String() == "" {
					empty = append(empty, rt.Field(i).Name)
				}
			}
		}
	}
	return empty
}

func TestCardStringsComplete(t *testing.T) {
	for _, lang := range Languages() {
		t.Run(string(lang), func(t *testing.T) {
			if missing := emptyStringFields(Card(lang)); len(missing) > 0 {
				t.Errorf("card strings for %s have empty fields: %v", lang, missing)
			}
		})
	}
}

func TestSiteStringsComplete(t *testing.T) {
	for _, lang := range Languages() {
		t.Run(string(lang), func(t *testing.T) {
			if missing := emptyStringFields(Site(lang)); len(missing) > 0 {
				t.Errorf("site strings for %s have empty fields: %v", lang, missing)
			}
		})
	}
}

func TestLanguagesDiffer(t *testing.T) {
	en := Card(models.LanguageEnglish)
	te := Card(models.LanguageTelugu)
	if en.Supporting == te.Supporting {
		t.Error("expected Telugu slogan to differ from English")
	}
	if en.Footer == te.Footer {
		t.Error("expected Telugu footer to differ from English")
	}
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	got := Card(models.Language("fr"))
	if got != Card(models.LanguageEnglish) {
		t.Errorf("expected English fallback, got %+v", got)
	}
	if Site(models.Language("")).AboutTitle != Site(models.LanguageEnglish).AboutTitle {
		t.Error("expected English site fallback")
	}
}
