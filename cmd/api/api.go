package api

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/fscope/fscope-server/cmd/utils"
	"github.com/fscope/fscope-server/service/auth"
	"github.com/fscope/fscope-server/service/goals"
	"github.com/fscope/fscope-server/service/transactions"
	"github.com/fscope/fscope-server/service/user"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
	tokens  *auth.TokenService
}

func NewApiServer(address string, db *gorm.DB, tokens *auth.TokenService) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
		tokens:  tokens,
	}
}

// Handler builds the full middleware/router stack. Exposed separately from
// Run so tests can drive it through httptest.
func (s *APIServer) Handler() http.Handler {
	router := mux.NewRouter()

	userHandler := user.NewHandler(s.db, s.tokens)
	userHandler.RegisterRoutes(router)

	transactionHandler := transactions.NewTransactionHandler(s.db, s.tokens)
	transactionHandler.RegisterRoutes(router)

	goalHandler := goals.NewGoalHandler(s.db, s.tokens)
	goalHandler.RegisterRoutes(router)

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins()),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Request-ID"}),
		handlers.AllowCredentials(),
	)

	return utils.RequestID(cors(handlers.LoggingHandler(os.Stdout, router)))
}

func (s *APIServer) Run() error {
	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, s.Handler())
}

func allowedOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return strings.Split(origins, ",")
	}
	return []string{"http://localhost:3000", "http://127.0.0.1:3000"}
}
