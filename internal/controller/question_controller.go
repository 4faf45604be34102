package controller

import (
	"errors"
	"net/http"
	"strconv"

	"educatif_backend/internal/model"
	"educatif_backend/internal/service"
	"educatif_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionController struct {
	QuestionService *service.QuestionService
	ProgressService *service.ProgressService
	AuthService     *service.AuthService
}

func NewQuestionController(questionService *service.QuestionService, progressService *service.ProgressService, authService *service.AuthService) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
		ProgressService: progressService,
		AuthService:     authService,
	}
}

type QuestionRequest struct {
	Age          int      `json:"age" binding:"required"`
	Niveau       string   `json:"niveau" binding:"required"`
	Question     string   `json:"question" binding:"required"`
	Choix        []string `json:"choix" binding:"required"`
	BonneReponse string   `json:"bonneReponse" binding:"required"`
	Explication  string   `json:"explication"`
}

type SubmitAnswersRequest struct {
	Answers []string `json:"answers"`
}

// GetByAgeAndNiveau resolves the display question set through the fallback
// cascade (exact age, age band, level only, synthesis).
//
// @Summary Questions par âge et niveau
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param age path int true "Âge"
// @Param niveau path string true "Niveau"
// @Success 200 {array} model.Question
// @Router /questions/age/{age}/niveau/{niveau} [get]
func (c *QuestionController) GetByAgeAndNiveau(ctx *gin.Context) {
	niveau := ctx.Param("niveau")
	// A non-numeric age behaves like an absent one.
	age, _ := strconv.Atoi(ctx.Param("age"))

	questions, generated, err := c.QuestionService.SelectQuestions(ctx.Request.Context(), niveau, age)
	if err != nil {
		util.InternalError(ctx, err)
		return
	}
	if generated != nil {
		ctx.JSON(http.StatusOK, generated)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// GetByNiveau godoc
// @Summary Questions par niveau
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param niveau path string true "Niveau"
// @Success 200 {array} model.Question
// @Router /questions/niveau/{niveau} [get]
func (c *QuestionController) GetByNiveau(ctx *gin.Context) {
	niveau := ctx.Param("niveau")

	questions, generated, err := c.QuestionService.SelectByNiveau(ctx.Request.Context(), niveau)
	if err != nil {
		util.InternalError(ctx, err)
		return
	}
	if generated != nil {
		ctx.JSON(http.StatusOK, generated)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// SubmitLevel grades a full answer set for one level and advances the
// caller's progression on a perfect first-time score.
//
// @Summary Soumettre les réponses d'un niveau
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param niveau path int true "Niveau"
// @Param body body SubmitAnswersRequest true "Réponses"
// @Success 200 {object} service.SubmissionResult
// @Router /questions/niveau/{niveau}/submit [post]
func (c *QuestionController) SubmitLevel(ctx *gin.Context) {
	claims := util.GetClaimsFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Unauthorized")
		return
	}

	niveau, err := strconv.Atoi(ctx.Param("niveau"))
	if err != nil {
		util.BadRequest(ctx, "Niveau invalide")
		return
	}

	var req SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.GradeSubmission(claims.ID, niveau, req.Answers)
	if err != nil {
		var incomplete *util.IncompleteSubmissionError
		switch {
		case errors.Is(err, util.ErrEleveNotFound):
			util.NotFound(ctx, "Student not found")
		case errors.Is(err, util.ErrNoQuestionsForLevel):
			util.NotFound(ctx, "No questions found for this level")
		case errors.As(err, &incomplete):
			ctx.JSON(http.StatusBadRequest, gin.H{
				"message":               "Please answer all questions",
				"expectedQuestionCount": incomplete.Expected,
				"receivedAnswerCount":   incomplete.Received,
			})
		default:
			util.InternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetAvailableLevels godoc
// @Summary Niveaux disponibles pour l'élève connecté
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} service.LevelStatus
// @Router /questions/niveaux-disponibles [get]
func (c *QuestionController) GetAvailableLevels(ctx *gin.Context) {
	eleve := c.AuthService.GetCurrentEleve(ctx)
	if eleve == nil {
		util.NotFound(ctx, "Student not found")
		return
	}
	ctx.JSON(http.StatusOK, service.AvailableLevels(eleve))
}

// GetAll godoc
// @Summary Toutes les questions
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.Question
// @Router /questions [get]
func (c *QuestionController) GetAll(ctx *gin.Context) {
	questions, err := c.QuestionService.ListQuestions()
	if err != nil {
		util.InternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// GetByID godoc
// @Summary Question par identifiant
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID"
// @Success 200 {object} model.Question
// @Router /questions/{id} [get]
func (c *QuestionController) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.NotFound(ctx, "Question non trouvée")
		return
	}

	question, err := c.QuestionService.GetQuestion(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "Question non trouvée")
			return
		}
		util.InternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// Create godoc
// @Summary Ajouter une question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body QuestionRequest true "Question"
// @Success 201 {object} map[string]interface{}
// @Router /questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question := &model.Question{
		Age:          req.Age,
		Niveau:       req.Niveau,
		Question:     req.Question,
		Choix:        req.Choix,
		BonneReponse: req.BonneReponse,
		Explication:  req.Explication,
	}
	if err := c.QuestionService.CreateQuestion(ctx.Request.Context(), question); err != nil {
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Question ajoutée avec succès",
		"question": question,
	})
}

// Update godoc
// @Summary Modifier une question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID"
// @Param body body QuestionRequest true "Question"
// @Success 200 {object} map[string]interface{}
// @Router /questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.NotFound(ctx, "Question non trouvée")
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.GetQuestion(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "Question non trouvée")
			return
		}
		util.InternalError(ctx, err)
		return
	}

	question.Age = req.Age
	question.Niveau = req.Niveau
	question.Question = req.Question
	question.Choix = req.Choix
	question.BonneReponse = req.BonneReponse
	question.Explication = req.Explication

	if err := c.QuestionService.UpdateQuestion(ctx.Request.Context(), question); err != nil {
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Question mise à jour avec succès",
		"question": question,
	})
}

// Delete godoc
// @Summary Supprimer une question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID"
// @Success 200 {object} map[string]interface{}
// @Router /questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.NotFound(ctx, "Question non trouvée")
		return
	}

	if err := c.QuestionService.DeleteQuestion(ctx.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "Question non trouvée")
			return
		}
		util.InternalError(ctx, err)
		return
	}

	util.Message(ctx, http.StatusOK, "Question supprimée avec succès")
}
