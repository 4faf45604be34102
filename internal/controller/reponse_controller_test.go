package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"educatif_backend/internal/model"
	"educatif_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReponseStore struct {
	created []model.Reponse
	byEleve map[uint][]model.Reponse
}

func (s *stubReponseStore) Create(r *model.Reponse) error {
	s.created = append(s.created, *r)
	return nil
}

func (s *stubReponseStore) FindByEleve(eleveID uint) ([]model.Reponse, error) {
	return s.byEleve[eleveID], nil
}

func newReponseRouter(reponses service.ReponseStore, questions service.QuestionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewReponseController(service.NewReponseService(reponses, questions))

	router := gin.New()
	router.POST("/api/reponses", ctrl.Soumettre)
	router.GET("/api/progression/:eleveId", ctrl.GetProgression)
	return router
}

func TestSoumettre(t *testing.T) {
	questions := &stubQuestionStore{byNiveau: map[string][]model.Question{
		"1": {{BaseModel: model.BaseModel{ID: 7}, Niveau: "1", Question: "2+3 ?", BonneReponse: "5"}},
	}}
	questionByID := &stubQuestionStoreByID{stubQuestionStore: questions}

	t.Run("correct answer", func(t *testing.T) {
		store := &stubReponseStore{}
		router := newReponseRouter(store, questionByID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reponses",
			strings.NewReader(`{"eleveId":1,"questionId":7,"reponseDonnee":"5"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Bonne réponse !")
		require.Len(t, store.created, 1)
		assert.True(t, store.created[0].EstCorrecte)
	})

	t.Run("wrong answer", func(t *testing.T) {
		store := &stubReponseStore{}
		router := newReponseRouter(store, questionByID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reponses",
			strings.NewReader(`{"eleveId":1,"questionId":7,"reponseDonnee":"4"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Mauvaise réponse.")
	})

	t.Run("unknown question", func(t *testing.T) {
		router := newReponseRouter(&stubReponseStore{}, questionByID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reponses",
			strings.NewReader(`{"eleveId":1,"questionId":99,"reponseDonnee":"5"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Question non trouvée"}`, w.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		router := newReponseRouter(&stubReponseStore{}, questionByID)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reponses", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetProgression(t *testing.T) {
	t.Run("no answers", func(t *testing.T) {
		router := newReponseRouter(&stubReponseStore{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/progression/1", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Aucune réponse trouvée","total":0,"bonnes":0,"pourcentage":0}`, w.Body.String())
	})

	t.Run("aggregated statistics", func(t *testing.T) {
		store := &stubReponseStore{byEleve: map[uint][]model.Reponse{
			1: {
				{EstCorrecte: true},
				{EstCorrecte: true},
				{EstCorrecte: false},
			},
		}}
		router := newReponseRouter(store, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/progression/1", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"total":3,"bonnes":2,"pourcentage":67,"message":"Progression : 2/3 (67%)"}`, w.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		router := newReponseRouter(&stubReponseStore{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/progression/abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Identifiant élève invalide"}`, w.Body.String())
	})
}

// stubQuestionStoreByID layers FindByID over the level-keyed stub.
type stubQuestionStoreByID struct {
	*stubQuestionStore
}

func (s *stubQuestionStoreByID) FindByID(id uint) (*model.Question, error) {
	for _, bank := range s.byNiveau {
		for i := range bank {
			if bank[i].ID == id {
				return &bank[i], nil
			}
		}
	}
	return s.stubQuestionStore.FindByID(id)
}
