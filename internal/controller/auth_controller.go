package controller

import (
	"errors"
	"fmt"
	"net/http"

	"educatif_backend/internal/model"
	"educatif_backend/internal/service"
	"educatif_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type RegisterRequest struct {
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginRequest struct {
	Email      string `json:"email"`
	MotDePasse string `json:"motDePasse"`
}

// Register godoc
// @Summary Inscription d'un élève
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Informations d'inscription"
// @Success 201 {object} map[string]interface{}
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// Per-field presence report, kept for the registration form.
	if req.Nom == "" || req.Prenom == "" || req.Email == "" || req.Password == "" || req.Age == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "Tous les champs sont requis",
			"missing": gin.H{
				"nom":      req.Nom == "",
				"prenom":   req.Prenom == "",
				"email":    req.Email == "",
				"password": req.Password == "",
				"age":      req.Age == 0,
			},
		})
		return
	}

	if req.Age < 5 || req.Age > 18 {
		util.BadRequest(ctx, "L'âge doit être compris entre 5 et 18 ans")
		return
	}

	eleve := &model.Eleve{
		Nom:      req.Nom,
		Prenom:   req.Prenom,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	}

	token, err := c.AuthService.RegisterEleve(eleve)
	if err != nil {
		if errors.Is(err, util.ErrEmailTaken) {
			util.BadRequest(ctx, "Cet email est déjà utilisé")
			return
		}
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Inscription réussie",
		"token":   token,
		"userId":  eleve.ID,
		"utilisateur": gin.H{
			"id":         eleve.ID,
			"nomComplet": fmt.Sprintf("%s %s", eleve.Nom, eleve.Prenom),
			"email":      eleve.Email,
			"age":        eleve.Age,
			"niveau":     eleve.Niveau,
		},
	})
}

// Login godoc
// @Summary Connexion d'un élève
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Identifiants"
// @Success 200 {object} map[string]interface{}
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "Email et mot de passe requis",
			"missing": gin.H{
				"email":    req.Email == "",
				"password": req.Password == "",
			},
		})
		return
	}

	eleve, token, err := c.AuthService.LoginEleve(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx, "Email ou mot de passe incorrect")
			return
		}
		util.InternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":   token,
		"userId":  eleve.ID,
		"message": "Connexion réussie",
	})
}

// AdminLogin godoc
// @Summary Connexion admin
// @Tags auth
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Identifiants admin"
// @Success 200 {object} map[string]interface{}
// @Router /admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.LoginAdmin(req.Email, req.MotDePasse)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAdminNotFound):
			util.NotFound(ctx, "Admin non trouvé")
		case errors.Is(err, util.ErrBadPassword):
			util.Unauthorized(ctx, "Mot de passe incorrect")
		default:
			util.InternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Connexion réussie",
		"token":   token,
	})
}
