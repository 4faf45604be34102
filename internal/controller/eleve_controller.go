package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"educatif_backend/internal/model"
	"educatif_backend/internal/repository"
	"educatif_backend/internal/service"
	"educatif_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type EleveController struct {
	AuthService     *service.AuthService
	ProgressService *service.ProgressService
	EleveRepo       *repository.EleveRepository
}

func NewEleveController(authService *service.AuthService, progressService *service.ProgressService, eleveRepo *repository.EleveRepository) *EleveController {
	return &EleveController{
		AuthService:     authService,
		ProgressService: progressService,
		EleveRepo:       eleveRepo,
	}
}

// GetProfile godoc
// @Summary Profil de l'élève connecté
// @Tags eleves
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Router /eleves/profile [get]
func (c *EleveController) GetProfile(ctx *gin.Context) {
	eleve := c.AuthService.GetCurrentEleve(ctx)
	if eleve == nil {
		util.NotFound(ctx, "Student not found")
		return
	}

	accessible, completed := service.ProfileVectors(eleve)

	ctx.JSON(http.StatusOK, gin.H{
		"email":            eleve.Email,
		"nom":              eleve.Nom,
		"prenom":           eleve.Prenom,
		"nomComplet":       fmt.Sprintf("%s %s", eleve.Prenom, eleve.Nom),
		"niveau":           eleve.Niveau,
		"age":              eleve.Age,
		"niveauxCompletes": eleve.NiveauxCompletes,
		"accessibleLevels": accessible,
		"completedLevels":  completed,
	})
}

// UpdateProgress overwrites the caller's progression vectors with the raw
// values from the request body. This endpoint bypasses grading entirely.
//
// @Summary Mise à jour directe de la progression
// @Tags eleves
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.OverwriteProgressRequest true "Vecteurs de progression"
// @Success 200 {object} map[string]interface{}
// @Router /eleves/update-progress [post]
func (c *EleveController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetClaimsFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Unauthorized")
		return
	}

	var req service.OverwriteProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	eleve, err := c.ProgressService.OverwriteProgress(claims.ID, req)
	if err != nil {
		if errors.Is(err, util.ErrEleveNotFound) {
			util.NotFound(ctx, "Student not found")
			return
		}
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "Progress updated successfully",
		"currentLevel":     eleve.Niveau,
		"niveauxCompletes": eleve.NiveauxCompletes,
	})
}

type CreateEleveRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Nom              string `json:"nom"`
	Prenom           string `json:"prenom"`
	Age              int    `json:"age"`
	Niveau           int    `json:"niveau"`
	NiveauxCompletes []int  `json:"niveauxCompletes"`
	AccessibleLevels []bool `json:"accessibleLevels"`
	CompletedLevels  []bool `json:"completedLevels"`
}

// CreateEleve is the raw admin CRUD path: it accepts externally supplied
// progression state and skips the registration defaults.
//
// @Summary Créer un élève (CRUD)
// @Tags eleves
// @Accept json
// @Produce json
// @Param body body CreateEleveRequest true "Élève"
// @Success 201 {object} model.Eleve
// @Router /eleves [post]
func (c *EleveController) CreateEleve(ctx *gin.Context) {
	var req CreateEleveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	eleve := &model.Eleve{
		Email:            req.Email,
		Password:         string(hashed),
		Nom:              req.Nom,
		Prenom:           req.Prenom,
		Age:              req.Age,
		Niveau:           req.Niveau,
		NiveauxCompletes: req.NiveauxCompletes,
		AccessibleLevels: req.AccessibleLevels,
		CompletedLevels:  req.CompletedLevels,
	}
	service.EnsureProgressVectors(eleve)

	if err := c.EleveRepo.Create(eleve); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ctx.JSON(http.StatusCreated, eleve)
}

// GetEleves godoc
// @Summary Liste des élèves
// @Tags eleves
// @Produce json
// @Success 200 {array} model.Eleve
// @Router /eleves [get]
func (c *EleveController) GetEleves(ctx *gin.Context) {
	eleves, err := c.EleveRepo.FindAll()
	if err != nil {
		util.InternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, eleves)
}

// DeleteEleve godoc
// @Summary Supprimer un élève
// @Tags eleves
// @Produce json
// @Param id path int true "ID de l'élève"
// @Success 200 {object} map[string]interface{}
// @Router /eleves/{id} [delete]
func (c *EleveController) DeleteEleve(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.NotFound(ctx, "Élève non trouvé")
		return
	}

	if err := c.EleveRepo.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "Élève non trouvé")
			return
		}
		util.InternalError(ctx, err)
		return
	}

	util.Message(ctx, http.StatusOK, "Élève supprimé avec succès")
}
