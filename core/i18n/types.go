package i18n

// M holds placeholder values for a translation.
type M map[string]any

// Plural forms looked up by Tn. Both supported languages only
// distinguish one from other.
const (
	PluralOne   = "one"
	PluralOther = "other"
)
