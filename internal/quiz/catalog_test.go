package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brisa-digital/quiz-crm/internal/model"
)

func TestQuestions_OrderedAndComplete(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, 6)
	for i, q := range qs {
		assert.Equal(t, i+1, q.ID, "question IDs are the 1-based position")
		assert.NotEmpty(t, q.Prompt)
		require.Len(t, q.Options, 5)
		for _, opt := range q.Options {
			assert.NotEmpty(t, opt.ID)
			assert.NotEmpty(t, opt.Label)
			assert.NotEmpty(t, opt.Value)
		}
	}
}

func TestQuestionByID(t *testing.T) {
	q := QuestionByID(3)
	require.NotNil(t, q)
	assert.Equal(t, 3, q.ID)

	assert.Nil(t, QuestionByID(0))
	assert.Nil(t, QuestionByID(7))
	assert.Nil(t, QuestionByID(-1))
}

func TestRecommend_CoversEveryCategory(t *testing.T) {
	for _, c := range model.AllCategories() {
		rec := Recommend(c)
		assert.NotEmpty(t, rec.Title, "category %s", c)
		assert.NotEmpty(t, rec.Description, "category %s", c)
		assert.NotEmpty(t, rec.Features, "category %s", c)
		assert.NotEmpty(t, rec.Benefits, "category %s", c)
		assert.NotEmpty(t, rec.Price, "category %s", c)
		assert.NotEmpty(t, rec.Timeframe, "category %s", c)
		assert.NotEmpty(t, rec.Recommendation, "category %s", c)
	}
}

func TestRecommend_UnknownCategoryPanics(t *testing.T) {
	assert.Panics(t, func() { Recommend(model.Category("blog")) })
}

func TestRecommendOK(t *testing.T) {
	_, ok := RecommendOK(model.CategoryEcommerce)
	assert.True(t, ok)

	_, ok = RecommendOK(model.Category("blog"))
	assert.False(t, ok)
}

func TestValidateTables(t *testing.T) {
	require.NoError(t, ValidateTables())
}
