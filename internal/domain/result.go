package domain

// RankedSearchResult is one hit of the relational ranking query. Transient,
// computed per query, never persisted. Rank is strictly positive for every
// returned result.
type RankedSearchResult struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Excerpt       string  `json:"excerpt"`
	CategoryTitle string  `json:"categoryTitle,omitempty"`
	CategorySlug  string  `json:"categorySlug,omitempty"`
	ImagePath     *string `json:"imagePath"`
	Rank          float64 `json:"rank"`
}
