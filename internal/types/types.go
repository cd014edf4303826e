// Package types defines the core value types of the enumeration engine.
package types

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
)

// NoLocale is the locale of the strings of a plain value.
var NoLocale = language.Und

// Value is the content of one attribute value cell. Nil is the null value.
type Value interface {
	// IsEmpty is true if every string in the value is empty.
	IsEmpty() bool
	// Strings returns the localized strings of the value, ordered by locale. A
	// plain value yields a single string with NoLocale.
	Strings() []LocalizedString
	isValue()
}

// Plain is a value that is not localized.
type Plain string

func (Plain) isValue() {}

func (p Plain) IsEmpty() bool { return string(p) == "" }

func (p Plain) Strings() []LocalizedString {
	return []LocalizedString{{Locale: NoLocale, Value: string(p)}}
}

func (p Plain) String() string {
	return fmt.Sprintf("#plain(%q)", string(p))
}

// Localized is a multilingual value, a string per locale. Localized values
// are treated as immutable; use With to derive changed copies.
type Localized map[language.Tag]string

func (Localized) isValue() {}

func (l Localized) IsEmpty() bool {
	for _, s := range l {
		if s != "" {
			return false
		}
	}
	return true
}

// Get returns the string for the locale, or empty if absent.
func (l Localized) Get(locale language.Tag) string {
	return l[locale]
}

// With returns a copy of the value with the locale's string set to s.
func (l Localized) With(locale language.Tag, s string) (copy Localized) {
	copy = make(Localized, len(l)+1)
	for k, v := range l {
		copy[k] = v
	}
	copy[locale] = s
	return
}

func (l Localized) Strings() (strs []LocalizedString) {
	strs = make([]LocalizedString, 0, len(l))
	for locale, s := range l {
		strs = append(strs, LocalizedString{Locale: locale, Value: s})
	}
	slices.SortFunc(strs, LessLocalizedString)
	return
}

func (l Localized) String() string {
	strs := l.Strings()
	parts := make([]string, len(strs))
	for i, s := range strs {
		parts[i] = s.String()
	}
	return fmt.Sprintf("#localized{%s}", strings.Join(parts, ", "))
}

// LocalizedString pairs a locale, possibly NoLocale, with a string.
type LocalizedString struct {
	Locale language.Tag
	Value  string
}

func (s LocalizedString) String() string {
	if s.Locale == NoLocale {
		return s.Value
	}
	return fmt.Sprintf("%s:%s", s.Locale, s.Value)
}

// LessLocalizedString orders localized strings by locale, then by value.
func LessLocalizedString(s1 LocalizedString, s2 LocalizedString) (less bool) {
	l1, l2 := s1.Locale.String(), s2.Locale.String()
	switch {
	case l1 < l2:
		less = true
	case l1 > l2:
		less = false
	default:
		less = s1.Value < s2.Value
	}
	return
}

// ToLocalized re-keys a plain value under the given locale.
func ToLocalized(p Plain, locale language.Tag) Localized {
	return Localized{locale: string(p)}
}

// ToPlain collapses a localized value to its string for the given locale. The
// strings of all other locales are dropped.
func ToPlain(l Localized, locale language.Tag) Plain {
	return Plain(l.Get(locale))
}

// ParseLocale parses a BCP 47 language tag.
func ParseLocale(s string) (locale language.Tag, err error) {
	locale, err = language.Parse(s)
	if err != nil {
		err = NewError("types.invalidLocale", "locale", s)
	}
	return
}
