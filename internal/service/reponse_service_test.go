package service

import (
	"testing"

	"educatif_backend/internal/model"
	"educatif_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReponseStore struct {
	created []model.Reponse
	byEleve map[uint][]model.Reponse
}

func (f *fakeReponseStore) Create(r *model.Reponse) error {
	f.created = append(f.created, *r)
	return nil
}

func (f *fakeReponseStore) FindByEleve(eleveID uint) ([]model.Reponse, error) {
	return f.byEleve[eleveID], nil
}

// questionByIDStore only serves FindByID, which is all Submit needs.
type questionByIDStore struct {
	fakeQuestionStore
	question *model.Question
}

func (s *questionByIDStore) FindByID(id uint) (*model.Question, error) {
	if s.question != nil && s.question.ID == id {
		return s.question, nil
	}
	return s.fakeQuestionStore.FindByID(id)
}

func TestReponseSubmit(t *testing.T) {
	question := &model.Question{
		BaseModel:    model.BaseModel{ID: 7},
		Question:     "2+3 ?",
		BonneReponse: "5",
	}

	t.Run("correct answer", func(t *testing.T) {
		store := &fakeReponseStore{}
		svc := NewReponseService(store, &questionByIDStore{question: question})

		reponse, err := svc.Submit(1, 7, "5")
		require.NoError(t, err)
		assert.True(t, reponse.EstCorrecte)
		assert.Equal(t, uint(1), reponse.EleveID)
		assert.Equal(t, uint(7), reponse.QuestionID)
		assert.Equal(t, "5", reponse.ReponseDonnee)
		assert.False(t, reponse.Date.IsZero())
		require.Len(t, store.created, 1)
	})

	t.Run("wrong answer is still recorded", func(t *testing.T) {
		store := &fakeReponseStore{}
		svc := NewReponseService(store, &questionByIDStore{question: question})

		reponse, err := svc.Submit(1, 7, "6")
		require.NoError(t, err)
		assert.False(t, reponse.EstCorrecte)
		require.Len(t, store.created, 1)
	})

	t.Run("unknown question", func(t *testing.T) {
		store := &fakeReponseStore{}
		svc := NewReponseService(store, &questionByIDStore{question: question})

		_, err := svc.Submit(1, 99, "5")
		assert.ErrorIs(t, err, util.ErrQuestionNotFound)
		assert.Empty(t, store.created)
	})
}

func TestReponseProgression(t *testing.T) {
	t.Run("no answers yet", func(t *testing.T) {
		svc := NewReponseService(&fakeReponseStore{}, nil)

		stats, err := svc.Progression(1)
		require.NoError(t, err)
		assert.Equal(t, &ProgressionStats{}, stats)
	})

	t.Run("percentage is rounded", func(t *testing.T) {
		store := &fakeReponseStore{byEleve: map[uint][]model.Reponse{
			1: {
				{EstCorrecte: true},
				{EstCorrecte: true},
				{EstCorrecte: false},
			},
		}}
		svc := NewReponseService(store, nil)

		stats, err := svc.Progression(1)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 2, stats.Bonnes)
		assert.Equal(t, 67, stats.Pourcentage) // 66.67 rounds up
	})
}
