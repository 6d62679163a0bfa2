package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

var detectableLanguages = []lingua.Language{
	lingua.English,
	lingua.Russian,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Chinese,
	lingua.Japanese,
}

// DetectLanguage returns the ISO 639-1 code of the text, or an empty
// string when no language is reliable enough.
func DetectLanguage(text string) string {
	if len(strings.TrimSpace(text)) == 0 {
		return ""
	}

	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectableLanguages...).
			Build()
	})

	if language, ok := languageDetector.DetectLanguageOf(text); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}
	return ""
}
