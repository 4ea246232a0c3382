package deck

import (
	"strings"

	"github.com/verte-zerg/fiszki/internal/model"
)

// Translation languages a word list can target.
const (
	LanguagePolish = "pl"
	LanguageGerman = "de"
)

const languageSampleSize = 20

var (
	germanMarkers  = []string{"der ", "die ", "das ", "heit", "ung"}
	polishMarkers  = []string{"ość", "anie", "enie"}
	germanArticles = []string{"der", "die", "das"}
)

// DetectLanguage guesses the translation language from the first items.
// Polish wins ties and empty lists.
func DetectLanguage(items []*model.VocabularyItem) string {
	german, polish := 0, 0
	for i, item := range items {
		if i == languageSampleSize {
			break
		}
		translation := strings.ToLower(item.Translation)
		if containsAny(translation, germanMarkers) {
			german++
		}
		if containsAny(translation, polishMarkers) {
			polish++
		}
	}
	if german > polish {
		return LanguageGerman
	}
	return LanguagePolish
}

// LanguageName returns a display name for a language code.
func LanguageName(code string) string {
	switch code {
	case LanguagePolish:
		return "Polski"
	case LanguageGerman:
		return "Deutsch (Polski)"
	default:
		return "English"
	}
}

// Article returns the German article a translation starts with, if any.
func Article(translation string) string {
	lower := strings.ToLower(translation)
	for _, article := range germanArticles {
		if strings.HasPrefix(lower, article+" ") {
			return article
		}
	}
	return ""
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
