package domain

// Locale is a short language code ("fr", "en") drawn from the configured
// supported-locale list. Every search and indexing operation is scoped to
// exactly one locale.
type Locale string

func (l Locale) String() string {
	return string(l)
}

// Supported reports whether l is part of the given locale list.
func (l Locale) Supported(locales []Locale) bool {
	for _, candidate := range locales {
		if candidate == l {
			return true
		}
	}
	return false
}
