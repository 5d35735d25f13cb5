package quiz

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

// CategoryWeight is one score increment contributed by an answer.
type CategoryWeight struct {
	Category model.Category
	Points   int
}

// weightTable maps question ID x answer value to category score increments.
// The first two questions (area of activity, site objective) are the strongest
// predictors and carry the highest weights; later questions contribute smaller
// increments and sometimes split weight across two categories.
var weightTable = map[int]map[string][]CategoryWeight{
	1: { // área de atuação
		"professional": {{model.CategoryProfessional, 3}},
		"creative":     {{model.CategoryPortfolio, 3}},
		"business":     {{model.CategoryBusiness, 3}},
		"ecommerce":    {{model.CategoryEcommerce, 3}},
		"startup":      {{model.CategoryStartup, 3}},
	},
	2: { // objetivo do site
		"professional": {{model.CategoryProfessional, 4}},
		"portfolio":    {{model.CategoryPortfolio, 4}},
		"ecommerce":    {{model.CategoryEcommerce, 4}},
		"business":     {{model.CategoryBusiness, 3}},
		"landing":      {{model.CategoryLanding, 4}},
	},
	3: { // prioridade no site
		"professional": {{model.CategoryProfessional, 2}},
		"gallery":      {{model.CategoryPortfolio, 3}},
		"ecommerce":    {{model.CategoryEcommerce, 3}},
		"seo":          {{model.CategoryBusiness, 2}, {model.CategoryProfessional, 1}},
		"basic":        {{model.CategoryLanding, 2}},
	},
	4: { // canal de comunicação
		"contact":     {{model.CategoryProfessional, 2}, {model.CategoryLanding, 1}},
		"form":        {{model.CategoryBusiness, 1}, {model.CategoryLanding, 2}},
		"social":      {{model.CategoryPortfolio, 2}},
		"appointment": {{model.CategoryProfessional, 2}},
		"chat":        {{model.CategoryEcommerce, 2}},
	},
	5: { // tempo disponível
		"lowmaintenance":  {{model.CategoryLanding, 2}, {model.CategoryProfessional, 1}},
		"occasional":      {{model.CategoryPortfolio, 2}},
		"regular":         {{model.CategoryBusiness, 2}, {model.CategoryEcommerce, 1}},
		"highinvolvement": {{model.CategoryStartup, 2}},
		"outsource":       {{model.CategoryProfessional, 1}, {model.CategoryEcommerce, 1}},
	},
	6: { // importância do site
		"basic":     {{model.CategoryLanding, 2}},
		"marketing": {{model.CategoryProfessional, 2}, {model.CategoryBusiness, 1}},
		"primary":   {{model.CategoryEcommerce, 3}},
		"branding":  {{model.CategoryPortfolio, 2}, {model.CategoryProfessional, 1}},
		"growth":    {{model.CategoryBusiness, 2}, {model.CategoryStartup, 2}},
	},
}

// fallbackRemap maps answer values to categories for the count-based fallback
// pass. Values already naming a category pass through unchanged; values with no
// entry and no category of the same name are dropped by the validity check in
// Score.
var fallbackRemap = map[string]model.Category{
	"creative":  model.CategoryPortfolio,
	"gallery":   model.CategoryPortfolio,
	"shop":      model.CategoryEcommerce,
	"online":    model.CategoryEcommerce,
	"basic":     model.CategoryLanding,
	"seo":       model.CategoryBusiness,
	"marketing": model.CategoryBusiness,
	"growth":    model.CategoryBusiness,
}

// ValidateTables checks the static scoring tables for internal consistency:
// every weight entry must reference a cataloged question, an answer value that
// some option of that question actually carries, and a valid category with a
// positive weight; every remap target must be a valid category. Call once at
// startup so broken table edits fail fast instead of skewing results.
func ValidateTables() error {
	var errs []string

	for qid, values := range weightTable {
		q := QuestionByID(qid)
		if q == nil {
			errs = append(errs, fmt.Sprintf("weight table references unknown question %d", qid))
			continue
		}
		known := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			known[opt.Value] = true
		}
		for value, weights := range values {
			if !known[value] {
				errs = append(errs, fmt.Sprintf("question %d has no option with value %q", qid, value))
			}
			if len(weights) == 0 {
				errs = append(errs, fmt.Sprintf("question %d value %q has no weights", qid, value))
			}
			for _, w := range weights {
				if !w.Category.Valid() {
					errs = append(errs, fmt.Sprintf("question %d value %q weights unknown category %q", qid, value, w.Category))
				}
				if w.Points <= 0 {
					errs = append(errs, fmt.Sprintf("question %d value %q has non-positive weight %d", qid, value, w.Points))
				}
			}
		}
	}

	for value, cat := range fallbackRemap {
		if !cat.Valid() {
			errs = append(errs, fmt.Sprintf("fallback remap %q targets unknown category %q", value, cat))
		}
	}

	for _, cat := range model.AllCategories() {
		if _, ok := recommendations[cat]; !ok {
			errs = append(errs, fmt.Sprintf("category %q has no recommendation", cat))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("quiz: table validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
