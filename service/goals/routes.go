package goals

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fscope/fscope-server/cmd/models"
	"github.com/fscope/fscope-server/cmd/utils"
	"github.com/fscope/fscope-server/service/auth"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// target_amount is NUMERIC(18,2): anything at or above 10^16 overflows.
var maxTargetAmount = decimal.New(1, 16)

type GoalHandler struct {
	db     *gorm.DB
	tokens *auth.TokenService
}

func NewGoalHandler(db *gorm.DB, tokens *auth.TokenService) *GoalHandler {
	return &GoalHandler{db: db, tokens: tokens}
}

// RegisterRoutes registers goal-related routes with Gorilla Mux
func (h *GoalHandler) RegisterRoutes(router *mux.Router) {
	goalRouter := router.PathPrefix("/goals").Subrouter()
	protect := utils.RequireUser(h.db, h.tokens)

	goalRouter.HandleFunc("/addGoal", protect(h.CreateGoal)).Methods("POST")
	goalRouter.HandleFunc("/", protect(h.GetGoals)).Methods("GET")
	goalRouter.HandleFunc("", protect(h.GetGoals)).Methods("GET")
}

type addGoalRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetDate   *time.Time      `json:"target_date"`
	Priority     *int            `json:"priority"`
	Status       string          `json:"status"`
}

func (req *addGoalRequest) validate() map[string]string {
	fields := map[string]string{}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 255 {
		fields["name"] = "name must be between 1 and 255 characters"
	}

	if !req.TargetAmount.IsPositive() {
		fields["target_amount"] = "target_amount must be greater than zero"
	} else if req.TargetAmount.GreaterThanOrEqual(maxTargetAmount) {
		fields["target_amount"] = "target_amount is out of range"
	}

	if req.TargetDate == nil {
		fields["target_date"] = "target_date is required"
	}

	if req.Priority != nil && (*req.Priority < 1 || *req.Priority > 5) {
		fields["priority"] = "priority must be between 1 and 5"
	}

	if req.Status != "" && !models.GoalStatus(req.Status).Valid() {
		fields["status"] = "status must be one of active, paused, achieved, cancelled"
	}

	return fields
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var req addGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if fields := req.validate(); len(fields) > 0 {
		utils.RespondWithValidationError(w, fields)
		return
	}

	priority := 3
	if req.Priority != nil {
		priority = *req.Priority
	}

	status := models.GoalStatusActive
	if req.Status != "" {
		status = models.GoalStatus(req.Status)
	}

	goal := models.Goal{
		UserID:       user.ID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		TargetDate:   *req.TargetDate,
		Priority:     priority,
		Status:       status,
	}

	if err := h.db.Create(&goal).Error; err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, goal)
}

// GetGoals returns the caller's goals in creation order. Soft-deleted goals
// are filtered out by GORM's deleted_at scope.
func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	goals := []models.Goal{}
	if err := h.db.Where("user_id = ?", user.ID).Order("id").Find(&goals).Error; err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve goals")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, goals)
}
