package transactions

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fscope/fscope-server/cmd/models"
	"github.com/fscope/fscope-server/cmd/utils"
	"github.com/fscope/fscope-server/service/auth"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionHandler struct {
	db     *gorm.DB
	tokens *auth.TokenService
}

func NewTransactionHandler(db *gorm.DB, tokens *auth.TokenService) *TransactionHandler {
	return &TransactionHandler{db: db, tokens: tokens}
}

// RegisterRoutes registers transaction-related routes with Gorilla Mux
func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	transactionRouter := router.PathPrefix("/transactions").Subrouter()
	protect := utils.RequireUser(h.db, h.tokens)

	transactionRouter.HandleFunc("/addTransaction", protect(h.CreateTransaction)).Methods("POST")
	transactionRouter.HandleFunc("/category", protect(h.GetCategoryDistribution)).Methods("GET")
	transactionRouter.HandleFunc("/", protect(h.GetTransactions)).Methods("GET")
	transactionRouter.HandleFunc("", protect(h.GetTransactions)).Methods("GET")
}

type addTransactionRequest struct {
	Account     string           `json:"account"`
	Type        string           `json:"type"`
	Description *string          `json:"description"`
	Category    string           `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Status      string           `json:"status"`
	Date        *time.Time       `json:"date"`
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	fields := map[string]string{}
	if req.Account == "" {
		fields["account"] = "account is required"
	}
	if req.Type == "" {
		fields["type"] = "type is required"
	}
	if req.Description == nil {
		fields["description"] = "description is required"
	}
	if req.Category == "" {
		fields["category"] = "category is required"
	}
	if req.Amount == nil {
		fields["amount"] = "amount is required"
	}
	if req.Status == "" {
		fields["status"] = "status is required"
	}
	if len(fields) > 0 {
		utils.RespondWithValidationError(w, fields)
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	// Owner always comes from the resolved identity, never from the payload.
	transaction := models.Transaction{
		Account:     req.Account,
		Type:        req.Type,
		Description: *req.Description,
		Category:    req.Category,
		Amount:      *req.Amount,
		Status:      req.Status,
		Date:        date,
		UserID:      user.ID,
	}

	if err := h.db.Create(&transaction).Error; err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, transaction)
}

// GetTransactions returns the caller's transactions, most recent first.
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	transactions := []models.Transaction{}
	if err := h.db.Where("user_id = ?", user.ID).Order("date DESC").Find(&transactions).Error; err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, transactions)
}

type CategoryDistribution struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int64           `json:"count"`
	Percent  float64         `json:"percent"`
}

// GetCategoryDistribution groups the caller's non-pending transactions by
// category: absolute amounts summed per category, row counts, and each
// category's share of the grand total. An owner with no qualifying rows gets
// an empty list, never a division by zero.
func (h *TransactionHandler) GetCategoryDistribution(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserFromContext(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var rows []struct {
		Category    string
		TotalAmount decimal.Decimal
		TxnCount    int64
	}
	err = h.db.Model(&models.Transaction{}).
		Select("category, SUM(ABS(amount)) AS total_amount, COUNT(id) AS txn_count").
		Where("user_id = ? AND status <> ?", user.ID, models.StatusPending).
		Group("category").
		Order("total_amount DESC").
		Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to aggregate transactions")
		return
	}

	grandTotal := decimal.Zero
	for _, row := range rows {
		grandTotal = grandTotal.Add(row.TotalAmount)
	}

	distribution := make([]CategoryDistribution, 0, len(rows))
	for _, row := range rows {
		percent := 0.0
		if !grandTotal.IsZero() {
			percent, _ = row.TotalAmount.Div(grandTotal).Mul(decimal.NewFromInt(100)).Float64()
		}
		distribution = append(distribution, CategoryDistribution{
			Category: row.Category,
			Amount:   row.TotalAmount,
			Count:    row.TxnCount,
			Percent:  percent,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, distribution)
}
