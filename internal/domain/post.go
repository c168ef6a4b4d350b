package domain

// PostTranslation holds the per-locale display fields of a post.
// A post has zero or one translation per supported locale.
type PostTranslation struct {
	Locale  Locale `json:"locale"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt"`
}

// SectionTranslation holds the per-locale title and body of one post section.
type SectionTranslation struct {
	Locale  Locale `json:"locale"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Section is one ordered content block of a post.
type Section struct {
	ID           int64                `json:"id"`
	Position     int                  `json:"position"`
	Translations []SectionTranslation `json:"translations"`
}

func (s *Section) Translation(locale Locale) (SectionTranslation, bool) {
	for _, tr := range s.Translations {
		if tr.Locale == locale {
			return tr, true
		}
	}
	return SectionTranslation{}, false
}

// TagTranslation holds the per-locale title and slug of a tag.
type TagTranslation struct {
	Locale Locale `json:"locale"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
}

type Tag struct {
	ID           int64            `json:"id"`
	Translations []TagTranslation `json:"translations"`
}

func (t *Tag) Translation(locale Locale) (TagTranslation, bool) {
	for _, tr := range t.Translations {
		if tr.Locale == locale {
			return tr, true
		}
	}
	return TagTranslation{}, false
}

// CategoryTranslation holds the per-locale title and slug of a category.
type CategoryTranslation struct {
	Locale Locale `json:"locale"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
}

type Category struct {
	ID           int64                 `json:"id"`
	Translations []CategoryTranslation `json:"translations"`
}

func (c *Category) Translation(locale Locale) (CategoryTranslation, bool) {
	for _, tr := range c.Translations {
		if tr.Locale == locale {
			return tr, true
		}
	}
	return CategoryTranslation{}, false
}

// Slug returns the category slug for a locale, or "" when untranslated.
func (c *Category) Slug(locale Locale) (string, bool) {
	tr, ok := c.Translation(locale)
	if !ok {
		return "", false
	}
	return tr.Slug, true
}

// Post is the searchable aggregate: identity plus per-locale translations,
// ordered sections, an optional category and zero-or-more tags. It is
// read-only from this subsystem's perspective.
type Post struct {
	ID        int64     `json:"id"`
	Active    bool      `json:"active"`
	ImagePath *string   `json:"imagePath"`
	Category  *Category `json:"category,omitempty"`

	Translations []PostTranslation `json:"translations"`
	Sections     []Section         `json:"sections,omitempty"`
	Tags         []Tag             `json:"tags,omitempty"`
}

func (p *Post) Translation(locale Locale) (PostTranslation, bool) {
	for _, tr := range p.Translations {
		if tr.Locale == locale {
			return tr, true
		}
	}
	return PostTranslation{}, false
}

// Slug returns the post slug for a locale, or "" when untranslated.
func (p *Post) Slug(locale Locale) (string, bool) {
	tr, ok := p.Translation(locale)
	if !ok {
		return "", false
	}
	return tr.Slug, true
}
