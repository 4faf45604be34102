package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"educatif_backend/internal/model"
	"educatif_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// QuestionStore is the persistence surface the question service needs.
// Satisfied by *repository.QuestionRepository.
type QuestionStore interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindAll() ([]model.Question, error)
	FindByNiveau(niveau string) ([]model.Question, error)
	FindByNiveauAndAge(niveau string, age int) ([]model.Question, error)
	FindByNiveauAndAgeRange(niveau string, minAge, maxAge int) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
}

const (
	questionCachePrefix = "questions:"
	questionCacheTTL    = 10 * time.Minute

	// Age tag applied to synthesized questions on the level-only lookup,
	// where no caller age is available.
	fallbackDefaultAge = 10
)

// ageBands are the fixed, non-overlapping fallback ranges for question
// selection. An age outside every band skips the band query entirely.
var ageBands = [][2]int{{5, 7}, {8, 10}, {11, 13}, {14, 18}}

// AgeBand returns the inclusive band containing age, if any.
func AgeBand(age int) (minAge, maxAge int, ok bool) {
	for _, b := range ageBands {
		if age >= b[0] && age <= b[1] {
			return b[0], b[1], true
		}
	}
	return 0, 0, false
}

// GeneratedQuestion is a synthesized placeholder item, returned when the bank
// has nothing for the requested level so the lesson flow never sees an empty
// set. Field names mirror the stored question documents.
type GeneratedQuestion struct {
	ID           string   `json:"_id"`
	Age          int      `json:"age"`
	Niveau       string   `json:"niveau"`
	Question     string   `json:"question"`
	Choix        []string `json:"choix"`
	BonneReponse string   `json:"bonneReponse"`
	Explication  string   `json:"explication"`
}

// GenerateFallbackQuestions synthesizes exactly 3 placeholder questions for
// the requested level and age, each with 4 generic choices and "Option A" as
// the designated correct choice.
func GenerateFallbackQuestions(niveau string, age int) []GeneratedQuestion {
	const notice = "Cette question a été générée automatiquement car aucune question n'a été trouvée en base de données."
	questions := make([]GeneratedQuestion, 0, 3)
	for i := 1; i <= 3; i++ {
		questions = append(questions, GeneratedQuestion{
			ID:           fmt.Sprintf("fallback_%s_%d", niveau, i),
			Age:          age,
			Niveau:       niveau,
			Question:     fmt.Sprintf("Question %d du niveau %s (générée automatiquement)", i, niveau),
			Choix:        []string{"Option A", "Option B", "Option C", "Option D"},
			BonneReponse: "Option A",
			Explication:  notice,
		})
	}
	return questions
}

type QuestionService struct {
	Store QuestionStore
	Redis *redis.Client
}

func NewQuestionService(store QuestionStore, rdb *redis.Client) *QuestionService {
	return &QuestionService{
		Store: store,
		Redis: rdb,
	}
}

// SelectQuestions resolves the question set for a level and age through the
// fallback cascade: exact age, then the age band, then the level alone, then
// synthesis. Result ordering is whatever the store returned; the operation
// never mutates the bank and never yields an empty set.
func (s *QuestionService) SelectQuestions(ctx context.Context, niveau string, age int) ([]model.Question, []GeneratedQuestion, error) {
	cacheKey := fmt.Sprintf("%sniveau:%s:age:%d", questionCachePrefix, niveau, age)
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		return cached, nil, nil
	}

	var questions []model.Question
	var err error

	if age > 0 {
		questions, err = s.Store.FindByNiveauAndAge(niveau, age)
		if err != nil {
			return nil, nil, err
		}
	}

	if len(questions) == 0 && age > 0 {
		if minAge, maxAge, ok := AgeBand(age); ok {
			questions, err = s.Store.FindByNiveauAndAgeRange(niveau, minAge, maxAge)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	if len(questions) == 0 {
		questions, err = s.Store.FindByNiveau(niveau)
		if err != nil {
			return nil, nil, err
		}
	}

	if len(questions) == 0 {
		return nil, GenerateFallbackQuestions(niveau, age), nil
	}

	// Keyed by the requested age even when a fallback query produced the
	// result. Admin CRUD flushes the whole keyspace, so only writes that
	// bypass this service wait out the TTL.
	s.cacheSet(ctx, cacheKey, questions)
	return questions, nil, nil
}

// SelectByNiveau is the level-only lookup with its own fallback-to-synthesis
// behavior; synthesized items carry a default age tag.
func (s *QuestionService) SelectByNiveau(ctx context.Context, niveau string) ([]model.Question, []GeneratedQuestion, error) {
	cacheKey := fmt.Sprintf("%sniveau:%s", questionCachePrefix, niveau)
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		return cached, nil, nil
	}

	questions, err := s.Store.FindByNiveau(niveau)
	if err != nil {
		return nil, nil, err
	}
	if len(questions) == 0 {
		return nil, GenerateFallbackQuestions(niveau, fallbackDefaultAge), nil
	}

	s.cacheSet(ctx, cacheKey, questions)
	return questions, nil, nil
}

func (s *QuestionService) GetQuestion(id uint) (*model.Question, error) {
	return s.Store.FindByID(id)
}

func (s *QuestionService) ListQuestions() ([]model.Question, error) {
	return s.Store.FindAll()
}

func (s *QuestionService) CreateQuestion(ctx context.Context, question *model.Question) error {
	if err := s.Store.Create(question); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, question *model.Question) error {
	if err := s.Store.Update(question); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) error {
	if err := s.Store.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// cacheGet returns nil on miss or any cache failure; reads always degrade to
// the database.
func (s *QuestionService) cacheGet(ctx context.Context, key string) []model.Question {
	if s.Redis == nil {
		return nil
	}
	val, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("question cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var questions []model.Question
	if err := json.Unmarshal([]byte(val), &questions); err != nil {
		return nil
	}
	if len(questions) == 0 {
		return nil
	}
	return questions
}

func (s *QuestionService) cacheSet(ctx context.Context, key string, questions []model.Question) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, data, questionCacheTTL).Err(); err != nil {
		logger.Log.Warn("question cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidateCache drops every cached question set after an admin mutation.
// The TTL covers anything a concurrent writer leaves behind.
func (s *QuestionService) invalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	iter := s.Redis.Scan(ctx, 0, questionCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		s.Redis.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Log.Warn("question cache invalidation failed", zap.Error(err))
	}
}
