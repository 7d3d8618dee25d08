// Package locale holds the supported display languages and the label tables
// the wizard and the composed message are rendered with.
package locale

import (
	"fmt"
	"strings"
)

// Language is a display language.
type Language string

const (
	English Language = "en"
	Hebrew  Language = "he"
	Arabic  Language = "ar"
)

// Languages lists the supported languages in toggle order.
var Languages = []Language{English, Hebrew, Arabic}

// ParseLanguage accepts a language code, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	code := Language(strings.ToLower(strings.TrimSpace(s)))
	for _, l := range Languages {
		if l == code {
			return l, nil
		}
	}
	return English, fmt.Errorf("unsupported language %q (want en, he or ar)", s)
}

// IsRTL reports whether text in this language runs right to left.
func (l Language) IsRTL() bool {
	return l == Hebrew || l == Arabic
}

// Next returns the language after l in toggle order, wrapping around.
func (l Language) Next() Language {
	for i, cand := range Languages {
		if cand == l {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return English
}

func (l Language) String() string { return string(l) }

// Text is a string translated per language.
type Text map[Language]string

// Get returns the translation for lang, falling back to English.
func (t Text) Get(lang Language) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	return t[English]
}
