// Package i18n resolves locales and localized copy for every drivelink surface.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	englishUS           = language.AmericanEnglish
	portugueseBrazilian = language.BrazilianPortuguese
	supportedTags       = []language.Tag{englishUS, portugueseBrazilian}
	matcher             = language.NewMatcher(supportedTags)
)

// SupportedTags returns the locales that have a message catalog.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the fallback locale.
func DefaultTag() language.Tag {
	return englishUS
}

// ParseTag parses value and reports whether it maps onto a supported locale.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return supportedTags[index], true
}

// MatchTags picks the best supported locale for an ordered preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[index]
}

// Normalize coerces tag onto a supported locale.
func Normalize(tag language.Tag) language.Tag {
	return MatchTags([]language.Tag{tag})
}

// Printer returns a message printer for the supported locale closest to tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(Normalize(tag))
}

// Localize formats key with loc and falls back to the English source string
// when the catalog has no entry.
func Localize(loc *message.Printer, key string, fallback string, args ...any) string {
	if loc != nil {
		value := loc.Sprintf(key, args...)
		if strings.TrimSpace(value) != "" && value != key {
			return value
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(fallback, args...)
	}
	return fallback
}

// LocalizeText looks up a message that takes no arguments. The fallback is
// returned as is, never used as a format string.
func LocalizeText(loc *message.Printer, key string, fallback string) string {
	if loc != nil {
		value := loc.Sprintf(key)
		if strings.TrimSpace(value) != "" && value != key {
			return value
		}
	}
	return fallback
}
