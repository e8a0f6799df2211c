package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"video-backend/internal/handlers"
	"video-backend/internal/live"
	"video-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	filmHandler *handlers.FilmHandler,
	actorHandler *handlers.ActorHandler,
	customerHandler *handlers.CustomerHandler,
	rentalHandler *handlers.RentalHandler,
	healthHandler *handlers.HealthHandler,
	hub *live.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Runs after route matching so metrics see the route template, not the
	// raw path.
	r.Use(middleware.MetricsMiddleware)

	// Public routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Catalog browsing is public. The order matters: fixed paths before {id}.
	filmsAPI := r.PathPrefix("/api/films").Subrouter()
	filmsAPI.HandleFunc("", filmHandler.ListFilms).Methods("GET")
	filmsAPI.HandleFunc("/top", filmHandler.TopFilms).Methods("GET")
	filmsAPI.HandleFunc("/search", filmHandler.SearchFilms).Methods("GET")
	filmsAPI.HandleFunc("/{id}", filmHandler.GetFilm).Methods("GET")
	filmsAPI.HandleFunc("/{id}/availability", filmHandler.FilmAvailability).Methods("GET")
	filmsAPI.Handle("", authMiddleware.RequireRole("manager")(
		http.HandlerFunc(filmHandler.CreateFilm))).Methods("POST")

	actorsAPI := r.PathPrefix("/api/actors").Subrouter()
	actorsAPI.HandleFunc("", actorHandler.ListActors).Methods("GET")
	actorsAPI.HandleFunc("/top", actorHandler.TopActors).Methods("GET")
	actorsAPI.HandleFunc("/{id}", actorHandler.GetActor).Methods("GET")
	actorsAPI.HandleFunc("/{id}/films", actorHandler.ActorFilms).Methods("GET")

	// Customer management requires a staff login
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("/search", customerHandler.SearchCustomers).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")
	customersAPI.HandleFunc("/{id}/rentals", rentalHandler.CustomerRentals).Methods("GET")

	// Rentals are the checkout desk, staff only
	rentalsAPI := r.PathPrefix("/api/rentals").Subrouter()
	rentalsAPI.Use(authMiddleware.Authenticate)
	rentalsAPI.HandleFunc("", rentalHandler.CreateRental).Methods("POST")
	rentalsAPI.HandleFunc("/{id}", rentalHandler.GetRental).Methods("GET")
	rentalsAPI.HandleFunc("/{id}/return", rentalHandler.ReturnRental).Methods("PATCH")
	rentalsAPI.HandleFunc("/{id}/receipt", rentalHandler.GetReceipt).Methods("GET")
	rentalsAPI.HandleFunc("/{id}/receipt.pdf", rentalHandler.GetReceiptPDF).Methods("GET")

	// Staff account management, managers only
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireRole("manager"))
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")

	authAPI := r.PathPrefix("/api/me").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("", authHandler.Me).Methods("GET")

	// Live availability feed
	r.HandleFunc("/ws/availability", hub.HandleWS)

	// Ops endpoints
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/system", healthHandler.SystemHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
