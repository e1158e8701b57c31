package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"plateshare/controllers"
	"plateshare/middleware"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controllers bundles the HTTP controllers the router dispatches to.
type Controllers struct {
	Users    *controllers.UserController
	Foods    *controllers.FoodController
	Requests *controllers.FoodRequestController
	Stats    *controllers.StatsController
}

// Options configures the middleware stack around the router.
type Options struct {
	Logger         *zap.Logger
	Metrics        *middleware.Metrics
	AllowedOrigins []string
	Port           string
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers, port string) {
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Plate Share Server Running on %s", port)
	}).Methods(http.MethodGet)

	// User routes
	router.HandleFunc("/users", c.Users.GetUsers).Methods(http.MethodGet)
	router.HandleFunc("/users", c.Users.Register).Methods(http.MethodPost)
	router.HandleFunc("/users/role/{email}", c.Users.GetRole).Methods(http.MethodGet)
	router.HandleFunc("/users/admin/{id}", c.Users.PromoteToAdmin).Methods(http.MethodPatch)
	router.HandleFunc("/users/{id}", c.Users.DeleteUser).Methods(http.MethodDelete)

	// Stats routes
	router.HandleFunc("/user-stats/{email}", c.Stats.GetUserStats).Methods(http.MethodGet)
	router.HandleFunc("/admin-stats", c.Stats.GetAdminStats).Methods(http.MethodGet)

	// Food routes
	router.HandleFunc("/foods", c.Foods.CreateFood).Methods(http.MethodPost)
	router.HandleFunc("/foods", c.Foods.GetFoods).Methods(http.MethodGet)
	router.HandleFunc("/foods/{id}", c.Foods.GetFoodByID).Methods(http.MethodGet)
	router.HandleFunc("/foods/{id}", c.Foods.UpdateFood).Methods(http.MethodPut)
	router.HandleFunc("/foods/{id}", c.Foods.AdjustQuantity).Methods(http.MethodPatch)
	router.HandleFunc("/foods/{id}", c.Foods.DeleteFood).Methods(http.MethodDelete)

	// Food request routes
	router.HandleFunc("/food-request", c.Requests.CreateRequest).Methods(http.MethodPost)
	router.HandleFunc("/food-request", c.Requests.GetRequests).Methods(http.MethodGet)
	router.HandleFunc("/food-request/{foodId}", c.Requests.GetRequestsByFood).Methods(http.MethodGet)
	router.HandleFunc("/food-request/{id}", c.Requests.UpdateRequest).Methods(http.MethodPatch)
	router.HandleFunc("/food-request/{id}", c.Requests.DeleteRequest).Methods(http.MethodDelete)
	router.HandleFunc("/my-request/{email}", c.Requests.GetMyRequests).Methods(http.MethodGet)
}

// NewHandler builds the router with request ids, logging, metrics, panic
// recovery and CORS around it.
func NewHandler(c Controllers, opts Options) http.Handler {
	router := mux.NewRouter()
	RegisterRoutes(router, c, opts.Port)

	chain := []mux.MiddlewareFunc{middleware.RequestID, middleware.RequestLogger(opts.Logger)}
	if opts.Metrics != nil {
		chain = append(chain, opts.Metrics.Middleware)
		router.Handle("/metrics", opts.Metrics.Handler()).Methods(http.MethodGet)
	}
	router.Use(chain...)

	// mux only runs Use middleware on matched routes, so 404 and 405
	// answers are wrapped by hand to be logged and counted as well.
	router.NotFoundHandler = wrap(http.HandlerFunc(notFound), chain)
	router.MethodNotAllowedHandler = wrap(http.HandlerFunc(methodNotAllowed), chain)

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(opts.Logger)),
		handlers.PrintRecoveryStack(true),
	)
	cors := handlers.CORS(
		handlers.AllowedOrigins(opts.AllowedOrigins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
		}),
		handlers.AllowedHeaders([]string{"Content-Type", middleware.RequestIDHeader}),
		handlers.AllowCredentials(),
	)
	return cors(recovery(router))
}

// wrap applies chain to h with the first middleware outermost, the order
// router.Use gives matched routes.
func wrap(h http.Handler, chain []mux.MiddlewareFunc) http.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Route not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
