package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"educatif_backend/internal/service"
	"educatif_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReponseController struct {
	ReponseService *service.ReponseService
}

func NewReponseController(reponseService *service.ReponseService) *ReponseController {
	return &ReponseController{ReponseService: reponseService}
}

type SubmitReponseRequest struct {
	EleveID       uint   `json:"eleveId" binding:"required"`
	QuestionID    uint   `json:"questionId" binding:"required"`
	ReponseDonnee string `json:"reponseDonnee" binding:"required"`
}

// Soumettre records one answer independently of the level-submission flow.
//
// @Summary Soumettre une réponse
// @Tags reponses
// @Accept json
// @Produce json
// @Param body body SubmitReponseRequest true "Réponse"
// @Success 201 {object} map[string]interface{}
// @Router /reponses [post]
func (c *ReponseController) Soumettre(ctx *gin.Context) {
	var req SubmitReponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reponse, err := c.ReponseService.Submit(req.EleveID, req.QuestionID, req.ReponseDonnee)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, "Question non trouvée")
			return
		}
		util.InternalError(ctx, err)
		return
	}

	message := "Mauvaise réponse."
	if reponse.EstCorrecte {
		message = "Bonne réponse !"
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": message,
		"reponse": reponse,
	})
}

// GetProgression godoc
// @Summary Statistiques de progression d'un élève
// @Tags progression
// @Produce json
// @Param eleveId path int true "ID de l'élève"
// @Success 200 {object} service.ProgressionStats
// @Router /progression/{eleveId} [get]
func (c *ReponseController) GetProgression(ctx *gin.Context) {
	eleveID, err := strconv.ParseUint(ctx.Param("eleveId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Identifiant élève invalide")
		return
	}

	stats, err := c.ReponseService.Progression(uint(eleveID))
	if err != nil {
		util.InternalError(ctx, err)
		return
	}

	if stats.Total == 0 {
		ctx.JSON(http.StatusOK, gin.H{
			"message":     "Aucune réponse trouvée",
			"total":       0,
			"bonnes":      0,
			"pourcentage": 0,
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"total":       stats.Total,
		"bonnes":      stats.Bonnes,
		"pourcentage": stats.Pourcentage,
		"message":     fmt.Sprintf("Progression : %d/%d (%d%%)", stats.Bonnes, stats.Total, stats.Pourcentage),
	})
}
