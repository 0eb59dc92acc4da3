// Package i18n resolves the active locale from the request path and serves
// the per-locale translation catalogs and formatting helpers used by the
// server-rendered views.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

const DefaultLocale = "en"

// SupportedLocales in matcher order; the first entry is the fallback.
var SupportedLocales = []string{"en", "hi", "de"}

var supportedTags = []language.Tag{
	language.English,
	language.Hindi,
	language.German,
}

var matcher = language.NewMatcher(supportedTags)

// Resolve splits a request path into its locale and the remaining path.
// English is never prefixed, so an unprefixed path resolves to the default
// locale with the path untouched.
func Resolve(path string) (locale string, rest string) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, remainder, _ := strings.Cut(trimmed, "/")
	if segment == "" {
		return DefaultLocale, path
	}
	tag, err := language.Parse(segment)
	if err != nil {
		return DefaultLocale, path
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return DefaultLocale, path
	}
	// the default locale is never prefixed; an explicit prefix still
	// resolves so callers can canonicalize the path
	return SupportedLocales[index], "/" + remainder
}

// Supported reports whether the given locale code is served.
func Supported(locale string) bool {
	for _, candidate := range SupportedLocales {
		if candidate == locale {
			return true
		}
	}
	return false
}
