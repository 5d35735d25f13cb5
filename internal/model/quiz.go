package model

// Category is the closed set of site profiles the scoring engine can produce.
// It is the join key between scoring output and the recommendation catalog.
type Category string

const (
	CategoryProfessional Category = "professional"
	CategoryPortfolio    Category = "portfolio"
	CategoryEcommerce    Category = "ecommerce"
	CategoryLanding      Category = "landing"
	CategoryBusiness     Category = "business"
	CategoryStartup      Category = "startup"
)

// AllCategories lists every Category in declaration order. The order matters:
// the scoring engine iterates it with a strict greater-than comparison, so
// earlier categories win ties.
func AllCategories() []Category {
	return []Category{
		CategoryProfessional,
		CategoryPortfolio,
		CategoryEcommerce,
		CategoryLanding,
		CategoryBusiness,
		CategoryStartup,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryProfessional, CategoryPortfolio, CategoryEcommerce,
		CategoryLanding, CategoryBusiness, CategoryStartup:
		return true
	}
	return false
}

// Option is one selectable answer. ID is the stable key the UI submits; Value
// is the semantic tag the scoring tables key on.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Question is one quiz question. ID is the 1-based position in the catalog and
// also the navigation key.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// AnswerSet maps question ID to the chosen option ID (not the option value).
// At most one entry per question; insertion order is irrelevant. JSON encoding
// stringifies the integer keys, matching the wire format the quiz UI submits.
type AnswerSet map[int]string

// Recommendation is the immutable reference record shown for one Category.
type Recommendation struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Features       []string `json:"features"`
	Benefits       []string `json:"benefits"`
	Price          string   `json:"price"`
	Timeframe      string   `json:"timeframe"`
	Recommendation string   `json:"recommendation"`
}
