package quiz

import "github.com/brisa-digital/quiz-crm/internal/model"

// lowConfidenceThreshold is the minimum winning weighted score. Below it the
// count-based fallback runs, so a single incidental answer cannot dominate a
// low-signal answer set.
const lowConfidenceThreshold = 3

// Score turns an answer set into a category. It is a pure function over the
// static tables and the given answers.
//
// Two tiers: a weighted accumulation over the weight table picks the category
// with the strictly greatest score (earlier categories win ties); when the
// winning score is below the low-confidence threshold, a count-based fallback
// tallies raw answer values, remaps them through fallbackRemap, and replaces
// the weighted result only when the most frequent mapped value names a real
// category. Answers referencing unknown question or option IDs are silently
// ignored. The default for empty or unusable input is "professional".
func Score(answers model.AnswerSet) model.Category {
	scores := make(map[model.Category]int, len(model.AllCategories()))
	counts := make(map[string]int)
	var seen []string

	// Walk the catalog in question order so both passes are deterministic.
	for _, q := range questions {
		optionID, ok := answers[q.ID]
		if !ok {
			continue
		}
		value, ok := optionValue(q.ID, optionID)
		if !ok {
			// Unknown option ID: tolerated, not an error.
			continue
		}

		if counts[value] == 0 {
			seen = append(seen, value)
		}
		counts[value]++

		for _, w := range weightTable[q.ID][value] {
			scores[w.Category] += w.Points
		}
	}

	best := model.CategoryProfessional
	maxScore := 0
	for _, c := range model.AllCategories() {
		if scores[c] > maxScore {
			maxScore = scores[c]
			best = c
		}
	}

	if maxScore < lowConfidenceThreshold {
		if fb, ok := fallbackCategory(counts, seen); ok {
			best = fb
		}
	}

	return best
}

// fallbackCategory runs the count-based second pass: the most frequent answer
// value, remapped through fallbackRemap, wins, but only counts as a result
// when it names a real category. Values seen earlier win count ties.
func fallbackCategory(counts map[string]int, seen []string) (model.Category, bool) {
	winner := model.CategoryProfessional
	maxCount := 0
	for _, value := range seen {
		mapped, ok := fallbackRemap[value]
		if !ok {
			mapped = model.Category(value)
		}
		if counts[value] > maxCount {
			maxCount = counts[value]
			winner = mapped
		}
	}

	if _, ok := recommendations[winner]; !ok {
		return "", false
	}
	return winner, true
}

// ScoreAndRecommend is the composed quiz pipeline: answers in, recommendation
// out. It is total: Score always returns a cataloged category.
func ScoreAndRecommend(answers model.AnswerSet) (model.Category, model.Recommendation) {
	c := Score(answers)
	return c, Recommend(c)
}
