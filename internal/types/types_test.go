package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestValues(t *testing.T) {
	assert.True(t, Plain("").IsEmpty())
	assert.False(t, Plain("x").IsEmpty())
	assert.True(t, Localized{}.IsEmpty())
	assert.True(t, Localized{language.English: ""}.IsEmpty())
	assert.False(t, Localized{language.English: "", language.German: "x"}.IsEmpty())

	assert.Equal(t, []LocalizedString{{Locale: NoLocale, Value: "x"}}, Plain("x").Strings())
	assert.Equal(t,
		[]LocalizedString{{Locale: language.German, Value: "Rot"}, {Locale: language.English, Value: "Red"}},
		Localized{language.English: "Red", language.German: "Rot"}.Strings())
	assert.Equal(t, `#localized{de:Rot, en:Red}`, fmt.Sprint(Localized{language.English: "Red", language.German: "Rot"}))
	assert.Equal(t, `#plain("x")`, fmt.Sprint(Plain("x")))
}

func TestWith(t *testing.T) {
	l := Localized{language.English: "Red"}
	l2 := l.With(language.German, "Rot")
	assert.Equal(t, Localized{language.English: "Red"}, l)
	assert.Equal(t, "Rot", l2.Get(language.German))
	assert.Equal(t, "", l2.Get(language.French))
}

func TestConversions(t *testing.T) {
	assert.Equal(t, Plain("Hello"), ToPlain(ToLocalized(Plain("Hello"), language.English), language.English))
	assert.Equal(t, Plain(""), ToPlain(Localized{language.German: "Hallo"}, language.English))
}

func TestLessLocalizedString(t *testing.T) {
	en := func(s string) LocalizedString { return LocalizedString{Locale: language.English, Value: s} }
	assert.True(t, LessLocalizedString(en("a"), en("b")))
	assert.False(t, LessLocalizedString(en("b"), en("a")))
	assert.False(t, LessLocalizedString(en("a"), en("a")))
	assert.True(t, LessLocalizedString(LocalizedString{Locale: language.German, Value: "z"}, en("a")))
	assert.Equal(t, "x", LocalizedString{Locale: NoLocale, Value: "x"}.String())
	assert.Equal(t, "en:x", en("x").String())
}

func TestParseLocale(t *testing.T) {
	locale, err := ParseLocale("en")
	assert.NoError(t, err)
	assert.Equal(t, language.English, locale)

	_, err = ParseLocale("not a locale")
	assert.True(t, errors.Is(err, Error{Code: "types.invalidLocale"}))
}

func TestError(t *testing.T) {
	err := NewError("attribute.literalName.identifier", "attribute", "Color.NAME", "value", true)
	assert.Equal(t, "attribute.literalName.identifier: {attribute=Color.NAME value=true}", err.Error())
	wrapped := fmt.Errorf("loading: %w", err)
	assert.True(t, errors.Is(wrapped, Error{Code: "attribute.literalName.identifier"}))
	assert.False(t, errors.Is(wrapped, Error{Code: "other"}))
	assert.Panics(t, func() { NewError("x", "dangling") })
	assert.Panics(t, func() { NewError("x", 1, 2) })
}
