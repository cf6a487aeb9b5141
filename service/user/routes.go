package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/fscope/fscope-server/cmd/models"
	"github.com/fscope/fscope-server/cmd/utils"
	"github.com/fscope/fscope-server/service/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	db     *gorm.DB
	tokens *auth.TokenService
}

func NewHandler(db *gorm.DB, tokens *auth.TokenService) *Handler {
	return &Handler{db: db, tokens: tokens}
}

// RegisterRoutes sets up all user-related routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	userRouter := router.PathPrefix("/users").Subrouter()
	userRouter.HandleFunc("/register", h.HandleRegister).Methods("POST")
	userRouter.HandleFunc("/login", h.HandleLogin).Methods("POST")
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var registerRequest struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&registerRequest); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON input")
		return
	}

	fullName := strings.TrimSpace(registerRequest.FullName)
	email := NormalizeEmail(registerRequest.Email)

	if fullName == "" || email == "" || registerRequest.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	// Best-effort pre-check; the unique index is the final arbiter when two
	// registrations race.
	var existingUser models.User
	if result := h.db.Where("email = ?", email).First(&existingUser); !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if result.Error != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		utils.RespondWithError(w, http.StatusConflict, "Email is already in use")
		return
	}

	passwordHash, err := auth.HashPassword(registerRequest.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "duplicate key") {
			log.Printf("Registration attempt with duplicate email: %v", err)
			utils.RespondWithError(w, http.StatusConflict, "Email is already in use")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Error registering user")
		return
	}

	accessToken, err := h.tokens.Issue(user.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating access token")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, tokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Unknown email and wrong password must be indistinguishable to the
	// caller.
	var user models.User
	if err := h.db.Where("email = ?", NormalizeEmail(loginRequest.Email)).First(&user).Error; err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !auth.CheckPassword(loginRequest.Password, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	accessToken, err := h.tokens.Issue(user.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating access token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// NormalizeEmail lowercases and trims the address so differently-cased
// spellings of the same mailbox cannot become two accounts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
