package handler

import (
	"github.com/gorilla/mux"

	"github.com/flowiq/cashflow-service/internal/config"
	"github.com/flowiq/cashflow-service/internal/middleware"
)

// Routes builds the HTTP router
func Routes(h *Handler, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", h.Register).Methods("POST")
	api.HandleFunc("/auth/otp/request", h.RequestOTP).Methods("POST")
	api.HandleFunc("/auth/otp/verify", h.VerifyOTP).Methods("POST")
	api.HandleFunc("/rates/usd", h.GetUSDRate).Methods("GET")

	// Protected routes
	auth := api.PathPrefix("/").Subrouter()
	auth.Use(middleware.AuthMiddleware(cfg))

	auth.HandleFunc("/auth/profile", h.GetProfile).Methods("GET")
	auth.HandleFunc("/auth/profile", h.UpdateProfile).Methods("PUT")

	auth.HandleFunc("/businesses", h.CreateBusiness).Methods("POST")
	auth.HandleFunc("/businesses", h.ListBusinesses).Methods("GET")
	auth.HandleFunc("/businesses/{businessID}", h.GetBusiness).Methods("GET")
	auth.HandleFunc("/businesses/{businessID}", h.UpdateBusiness).Methods("PUT")

	auth.HandleFunc("/businesses/{businessID}/incomes", h.CreateIncome).Methods("POST")
	auth.HandleFunc("/businesses/{businessID}/incomes", h.ListIncomes).Methods("GET")
	auth.HandleFunc("/businesses/{businessID}/incomes/{incomeID}", h.GetIncome).Methods("GET")
	auth.HandleFunc("/businesses/{businessID}/incomes/{incomeID}", h.UpdateIncome).Methods("PUT")
	auth.HandleFunc("/businesses/{businessID}/incomes/{incomeID}", h.DeleteIncome).Methods("DELETE")

	auth.HandleFunc("/businesses/{businessID}/expenses", h.CreateExpense).Methods("POST")
	auth.HandleFunc("/businesses/{businessID}/expenses", h.ListExpenses).Methods("GET")
	auth.HandleFunc("/businesses/{businessID}/expenses/{expenseID}", h.GetExpense).Methods("GET")
	auth.HandleFunc("/businesses/{businessID}/expenses/{expenseID}", h.UpdateExpense).Methods("PUT")
	auth.HandleFunc("/businesses/{businessID}/expenses/{expenseID}", h.DeleteExpense).Methods("DELETE")

	auth.HandleFunc("/dashboard/summary/{businessID}", h.GetDashboardSummary).Methods("GET")
	auth.HandleFunc("/dashboard/trends/{businessID}", h.GetTrends).Methods("GET")
	auth.HandleFunc("/dashboard/health/{businessID}", h.GetHealth).Methods("GET")
	auth.HandleFunc("/dashboard/cashflow", h.CalculateCashflow).Methods("POST")

	auth.HandleFunc("/ai/predict/{businessID}", h.Predict).Methods("GET")
	auth.HandleFunc("/ai/anomaly/{businessID}", h.DetectAnomalies).Methods("GET")
	auth.HandleFunc("/ai/categorize/receipt", h.CategorizeReceipt).Methods("POST")

	return r
}
