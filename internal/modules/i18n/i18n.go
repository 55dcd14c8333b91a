package i18n

import "strings"

// Lang is a supported UI language code.
type Lang string

const (
	// Russian is the default language; every entity carries its fields in it.
	Russian Lang = "ru"
	// Kazakh is the secondary language with optional per-field translations.
	Kazakh Lang = "kk"

	Default   = Russian
	Secondary = Kazakh
)

// Field names a translatable entity attribute.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
)

// Localized is implemented by entities that carry text in both languages.
// Text returns the default-language value and the (possibly empty) secondary value.
type Localized interface {
	Text(field Field) (primary, secondary string)
}

// Parse returns the Lang for code and whether it is supported.
func Parse(code string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(code))) {
	case Russian:
		return Russian, true
	case Kazakh:
		return Kazakh, true
	}
	return "", false
}

// DisplayText picks the value of field for lang. The secondary language falls back to
// the default-language value when its translation is empty.
func DisplayText(entity Localized, field Field, lang Lang) string {
	primary, secondary := entity.Text(field)
	if lang == Secondary && strings.TrimSpace(secondary) != "" {
		return secondary
	}
	return primary
}

// ResolveLanguage chooses the session language: a stored preference first, then the
// language reported by the identity provider if supported, then the default.
func ResolveLanguage(stored, reported string) Lang {
	if l, ok := Parse(stored); ok {
		return l
	}
	if l, ok := Parse(reported); ok {
		return l
	}
	return Default
}
