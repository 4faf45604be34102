package service

import (
	"context"
	"fmt"
	"testing"

	"educatif_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeQuestionStore serves canned results and records which queries ran.
type fakeQuestionStore struct {
	byNiveauAndAge map[string][]model.Question // "niveau|age"
	byAgeRange     map[string][]model.Question // "niveau|min-max"
	byNiveau       map[string][]model.Question
	queries        []string
}

func (f *fakeQuestionStore) Create(q *model.Question) error  { return nil }
func (f *fakeQuestionStore) Update(q *model.Question) error  { return nil }
func (f *fakeQuestionStore) Delete(id uint) error            { return nil }
func (f *fakeQuestionStore) FindAll() ([]model.Question, error) {
	return nil, nil
}

func (f *fakeQuestionStore) FindByID(id uint) (*model.Question, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionStore) FindByNiveau(niveau string) ([]model.Question, error) {
	f.queries = append(f.queries, "niveau:"+niveau)
	return f.byNiveau[niveau], nil
}

func (f *fakeQuestionStore) FindByNiveauAndAge(niveau string, age int) ([]model.Question, error) {
	f.queries = append(f.queries, fmt.Sprintf("exact:%s|%d", niveau, age))
	return f.byNiveauAndAge[fmt.Sprintf("%s|%d", niveau, age)], nil
}

func (f *fakeQuestionStore) FindByNiveauAndAgeRange(niveau string, minAge, maxAge int) ([]model.Question, error) {
	f.queries = append(f.queries, fmt.Sprintf("range:%s|%d-%d", niveau, minAge, maxAge))
	return f.byAgeRange[fmt.Sprintf("%s|%d-%d", niveau, minAge, maxAge)], nil
}

func q(niveau string, age int, text string) model.Question {
	return model.Question{
		Age:          age,
		Niveau:       niveau,
		Question:     text,
		Choix:        []string{"A", "B", "C", "D"},
		BonneReponse: "A",
	}
}

func TestAgeBand(t *testing.T) {
	cases := []struct {
		age      int
		min, max int
		ok       bool
	}{
		{5, 5, 7, true},
		{6, 5, 7, true},
		{7, 5, 7, true},
		{8, 8, 10, true},
		{10, 8, 10, true},
		{11, 11, 13, true},
		{13, 11, 13, true},
		{14, 14, 18, true},
		{18, 14, 18, true},
		{4, 0, 0, false},
		{19, 0, 0, false},
		{0, 0, 0, false},
	}

	for _, tc := range cases {
		minAge, maxAge, ok := AgeBand(tc.age)
		assert.Equal(t, tc.ok, ok, "age %d", tc.age)
		assert.Equal(t, tc.min, minAge, "age %d", tc.age)
		assert.Equal(t, tc.max, maxAge, "age %d", tc.age)
	}
}

func TestGenerateFallbackQuestions(t *testing.T) {
	questions := GenerateFallbackQuestions("3", 9)

	require.Len(t, questions, 3)
	for i, fq := range questions {
		assert.Equal(t, fmt.Sprintf("fallback_3_%d", i+1), fq.ID)
		assert.Equal(t, "3", fq.Niveau)
		assert.Equal(t, 9, fq.Age)
		assert.Len(t, fq.Choix, 4)
		assert.Equal(t, "Option A", fq.BonneReponse)
		assert.Contains(t, fq.Question, "générée automatiquement")
		assert.NotEmpty(t, fq.Explication)
	}
}

func TestSelectQuestionsExactAgeMatch(t *testing.T) {
	store := &fakeQuestionStore{
		byNiveauAndAge: map[string][]model.Question{
			"2|9": {q("2", 9, "exact")},
		},
	}
	svc := NewQuestionService(store, nil)

	questions, generated, err := svc.SelectQuestions(context.Background(), "2", 9)
	require.NoError(t, err)
	assert.Nil(t, generated)
	require.Len(t, questions, 1)
	assert.Equal(t, "exact", questions[0].Question)
	assert.Equal(t, []string{"exact:2|9"}, store.queries)
}

func TestSelectQuestionsAgeBandFallback(t *testing.T) {
	// Age 9, no exact age-9 items in level "2", but items at ages 8 and 10
	// exist: the [8,10] band query must find them.
	store := &fakeQuestionStore{
		byAgeRange: map[string][]model.Question{
			"2|8-10": {q("2", 8, "huit"), q("2", 10, "dix")},
		},
	}
	svc := NewQuestionService(store, nil)

	questions, generated, err := svc.SelectQuestions(context.Background(), "2", 9)
	require.NoError(t, err)
	assert.Nil(t, generated)
	require.Len(t, questions, 2)
	assert.Equal(t, "huit", questions[0].Question)
	assert.Equal(t, "dix", questions[1].Question)
	assert.Equal(t, []string{"exact:2|9", "range:2|8-10"}, store.queries)
}

func TestSelectQuestionsOutOfBandSkipsRangeQuery(t *testing.T) {
	// Ages 4 and 19 match no band: the cascade goes straight to level-only.
	for _, age := range []int{4, 19} {
		store := &fakeQuestionStore{
			byNiveau: map[string][]model.Question{
				"1": {q("1", 7, "niveau seul")},
			},
		}
		svc := NewQuestionService(store, nil)

		questions, generated, err := svc.SelectQuestions(context.Background(), "1", age)
		require.NoError(t, err)
		assert.Nil(t, generated)
		require.Len(t, questions, 1)
		assert.Equal(t, []string{fmt.Sprintf("exact:1|%d", age), "niveau:1"}, store.queries)
	}
}

func TestSelectQuestionsWithoutAgeSkipsAgeQueries(t *testing.T) {
	store := &fakeQuestionStore{
		byNiveau: map[string][]model.Question{
			"1": {q("1", 7, "a"), q("1", 8, "b")},
		},
	}
	svc := NewQuestionService(store, nil)

	questions, generated, err := svc.SelectQuestions(context.Background(), "1", 0)
	require.NoError(t, err)
	assert.Nil(t, generated)
	assert.Len(t, questions, 2)
	assert.Equal(t, []string{"niveau:1"}, store.queries)
}

func TestSelectQuestionsSynthesizesWhenBankIsEmpty(t *testing.T) {
	store := &fakeQuestionStore{}
	svc := NewQuestionService(store, nil)

	questions, generated, err := svc.SelectQuestions(context.Background(), "7", 12)
	require.NoError(t, err)
	assert.Nil(t, questions)
	require.Len(t, generated, 3)
	for _, fq := range generated {
		assert.Equal(t, "7", fq.Niveau)
		assert.Equal(t, 12, fq.Age)
		assert.Len(t, fq.Choix, 4)
		assert.Equal(t, "Option A", fq.BonneReponse)
	}
	// Full cascade ran before synthesizing.
	assert.Equal(t, []string{"exact:7|12", "range:7|11-13", "niveau:7"}, store.queries)
}

func TestSelectByNiveau(t *testing.T) {
	store := &fakeQuestionStore{
		byNiveau: map[string][]model.Question{
			"CE1": {q("CE1", 7, "stored")},
		},
	}
	svc := NewQuestionService(store, nil)

	questions, generated, err := svc.SelectByNiveau(context.Background(), "CE1")
	require.NoError(t, err)
	assert.Nil(t, generated)
	require.Len(t, questions, 1)

	// Unknown level synthesizes with the default age tag.
	questions, generated, err = svc.SelectByNiveau(context.Background(), "CM2")
	require.NoError(t, err)
	assert.Nil(t, questions)
	require.Len(t, generated, 3)
	assert.Equal(t, 10, generated[0].Age)
	assert.Equal(t, "fallback_CM2_1", generated[0].ID)
}
