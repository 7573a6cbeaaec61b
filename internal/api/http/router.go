package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"proptrack-backend/internal/security"
	"proptrack-backend/internal/service"
)

// NewRouter builds the API router. Every route requires a valid bearer
// token; the middleware places the authenticated actor in the request
// context for the handlers.
func NewRouter(
	validator security.TokenValidator,
	userSvc service.UserService,
	complaintSvc service.ComplaintService,
	paymentSvc service.PaymentService,
	performanceSvc service.PerformanceService,
) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(validator))

	api.HandleFunc("/me", NewUserHandler(userSvc).GetMe).Methods("GET")
	RegisterComplaintRoutes(api, NewComplaintHandler(complaintSvc))
	RegisterPaymentRoutes(api, NewPaymentHandler(paymentSvc))
	RegisterPerformanceRoutes(api, NewPerformanceHandler(performanceSvc))

	return router
}

// RegisterComplaintRoutes registers the complaint workflow endpoints
func RegisterComplaintRoutes(router *mux.Router, handler *ComplaintHandler) {
	router.HandleFunc("/complaints", handler.Create).Methods("POST")
	router.HandleFunc("/complaints/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/complaints/{id}", handler.Delete).Methods("DELETE")
	router.HandleFunc("/complaints/{id}/start", handler.Start).Methods("POST")
	router.HandleFunc("/complaints/{id}/manager-resolve", handler.ManagerMarkResolved).Methods("POST")
	router.HandleFunc("/complaints/{id}/confirm-resolution", handler.RenterConfirmResolution).Methods("POST")
	router.HandleFunc("/complaints/{id}/resolve", handler.RenterDirectResolve).Methods("POST")
	router.HandleFunc("/renters/me/complaints", handler.ListMine).Methods("GET")
	router.HandleFunc("/buildings/{id}/complaints", handler.ListByBuilding).Methods("GET")
}

// RegisterPaymentRoutes registers payment lookup and verification endpoints
func RegisterPaymentRoutes(router *mux.Router, handler *PaymentHandler) {
	router.HandleFunc("/payments/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/payments/{id}/claim", handler.SubmitClaim).Methods("POST")
	router.HandleFunc("/payments/{id}/verify", handler.Verify).Methods("POST")
	router.HandleFunc("/payments/{id}/reject", handler.Reject).Methods("POST")
	router.HandleFunc("/payments/bulk-verify", handler.BulkVerify).Methods("POST")
	router.HandleFunc("/renters/me/payments", handler.ListMine).Methods("GET")
	router.HandleFunc("/buildings/{id}/payments/awaiting", handler.ListAwaitingVerification).Methods("GET")
}

// RegisterPerformanceRoutes registers the monthly aggregate endpoints
func RegisterPerformanceRoutes(router *mux.Router, handler *PerformanceHandler) {
	router.HandleFunc("/buildings/{id}/performance", handler.GetBuildingPerformance).Methods("GET")
	router.HandleFunc("/buildings/{id}/rent-summary", handler.GetRentSummary).Methods("GET")
}
