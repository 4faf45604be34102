package service

import (
	"errors"

	"educatif_backend/internal/config"
	"educatif_backend/internal/model"
	"educatif_backend/internal/repository"
	"educatif_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	EleveRepo *repository.EleveRepository
	AdminRepo *repository.AdminRepository
	Cfg       *config.Config
}

func NewAuthService(eleveRepo *repository.EleveRepository, adminRepo *repository.AdminRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		EleveRepo: eleveRepo,
		AdminRepo: adminRepo,
		Cfg:       cfg,
	}
}

// RegisterEleve creates a student account with the registration defaults:
// current level 1, empty completed set, only level 0 unlocked. Returns the
// signed token for immediate login.
func (s *AuthService) RegisterEleve(eleve *model.Eleve) (string, error) {
	_, err := s.EleveRepo.FindByEmail(eleve.Email)
	if err == nil {
		return "", util.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(eleve.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	eleve.Password = string(hashed)
	eleve.Niveau = 1
	eleve.NiveauxCompletes = []int{}
	eleve.AccessibleLevels = model.DefaultAccessibleLevels()
	eleve.CompletedLevels = model.DefaultCompletedLevels()

	if err := s.EleveRepo.Create(eleve); err != nil {
		return "", err
	}

	return util.GenerateJWT(eleve.ID, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// LoginEleve verifies credentials and issues a token. Unknown email and wrong
// password collapse into the same error so the response leaks nothing.
func (s *AuthService) LoginEleve(email, password string) (*model.Eleve, string, error) {
	eleve, err := s.EleveRepo.FindByEmail(email)
	if err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(eleve.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(eleve.ID, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return eleve, token, nil
}

// LoginAdmin issues a token for the admin identity class. The token is signed
// with the same secret as student tokens and carries no extra scope.
func (s *AuthService) LoginAdmin(email, password string) (string, error) {
	admin, err := s.AdminRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrAdminNotFound
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", util.ErrBadPassword
	}

	return util.GenerateJWT(admin.ID, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// GetCurrentEleve resolves the bearer identity to a student record.
func (s *AuthService) GetCurrentEleve(c *gin.Context) *model.Eleve {
	claims := util.GetClaimsFromContext(c)
	if claims == nil {
		return nil
	}
	eleve, err := s.EleveRepo.FindByID(claims.ID)
	if err != nil {
		return nil
	}
	return eleve
}
