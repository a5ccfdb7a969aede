package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sreeaadya/drycleaners/internal/domain"
	"github.com/sreeaadya/drycleaners/internal/observability"
	"github.com/sreeaadya/drycleaners/internal/service"
)

//go:generate mockgen -source=internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type OrdersService interface {
	Create(ctx context.Context, req service.CreateOrderRequest) (*domain.Order, error)
	Update(ctx context.Context, orderID string, upd domain.OrderUpdate) (*domain.Order, error)
	Delete(ctx context.Context, orderID string) error
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

type AccountsService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	GoogleLogin(ctx context.Context, rawToken string) (*domain.User, error)
	UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error)
	DeleteAccount(ctx context.Context, uid, email string) error
}

type Server struct {
	orders   OrdersService
	accounts AccountsService
	router   chi.Router
	logger   *zap.Logger
	metrics  observability.Metrics
}

func New(orders OrdersService, accounts AccountsService, logger *zap.Logger,
	metrics observability.Metrics, metricsHandler http.Handler) *Server {
	s := &Server{
		orders:   orders,
		accounts: accounts,
		router:   chi.NewRouter(),
		logger:   logger,
		metrics:  metrics,
	}
	s.routes(metricsHandler)
	return s
}

func (s *Server) routes(metricsHandler http.Handler) {
	s.router.Use(RequestID)
	s.router.Use(Logging(s.logger, s.metrics))

	s.router.Get("/", s.root)
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if metricsHandler != nil {
		s.router.Handle("/metrics", metricsHandler)
	}

	s.router.Post("/signup", s.signup)
	s.router.Post("/login", s.login)
	s.router.Post("/google-login", s.googleLogin)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/orders", s.createOrder)
		r.Get("/orders", s.listOrders)
		// The one path segment serves an email on GET and an orderId on
		// PUT/DELETE, so the param name is shared.
		r.Get("/orders/{key}", s.listUserOrders)
		r.Put("/orders/{key}", s.updateOrder)
		r.Delete("/orders/{key}", s.deleteOrder)
		r.Post("/updateUser", s.updateUser)
		r.Delete("/deleteUser", s.deleteUser)
	})
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sree Aadya backend running"})
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json", err)
		return
	}

	user, err := s.accounts.Signup(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "All fields required", nil)
	case errors.Is(err, domain.ErrDuplicate):
		writeError(w, http.StatusBadRequest, "Email already registered", nil)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Signup error", err)
	default:
		writeJSON(w, http.StatusCreated, map[string]any{"message": "User registered", "user": user})
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json", err)
		return
	}

	user, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "Incorrect password", nil)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Login error", err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"message": "Login successful", "user": user})
	}
}

func (s *Server) googleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Credential string `json:"credential"`
		Token      string `json:"token"`
		IDToken    string `json:"id_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json", err)
		return
	}
	token := firstNonEmpty(req.Credential, req.Token, req.IDToken)
	if token == "" {
		writeError(w, http.StatusBadRequest, "No token provided", nil)
		return
	}

	user, err := s.accounts.GoogleLogin(r.Context(), token)
	switch {
	case errors.Is(err, domain.ErrInvalidCredential):
		writeError(w, http.StatusUnauthorized, "Google login error", err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Google login error", err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"message": "Google login successful", "user": user})
	}
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserEmail        string  `json:"userEmail"`
		Service          string  `json:"service"`
		Quantity         int     `json:"quantity"`
		Price            float64 `json:"price"`
		ExpectedDelivery string  `json:"expectedDelivery"`
		PickupPerson     string  `json:"pickupPerson"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json", err)
		return
	}

	order, err := s.orders.Create(r.Context(), service.CreateOrderRequest{
		UserEmail:        req.UserEmail,
		Service:          req.Service,
		Quantity:         req.Quantity,
		Price:            req.Price,
		ExpectedDelivery: req.ExpectedDelivery,
		PickupPerson:     req.PickupPerson,
	})
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "Order creation error", err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Order creation error", err)
	default:
		writeJSON(w, http.StatusCreated, map[string]any{"message": "Order placed", "order": order})
	}
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching orders", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) listUserOrders(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "key")
	orders, err := s.orders.ListByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching user orders", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "key")

	var upd domain.OrderUpdate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "bad json", err)
		return
	}

	order, err := s.orders.Update(r.Context(), orderID, upd)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Order not found", nil)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "Error updating order", err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Error updating order", err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"message": "Order updated successfully", "order": order})
	}
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "key")

	err := s.orders.Delete(r.Context(), orderID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Order not found", nil)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Error deleting order", err)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
	}
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UID        string `json:"uid"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		JoinedDate string `json:"joinedDate"`
		Address    string `json:"address"`
		City       string `json:"city"`
		Pincode    string `json:"pincode"`
		Landmark   string `json:"landmark"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json", err)
		return
	}

	upd := domain.ProfileUpdate{
		UID:      req.UID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Pincode:  req.Pincode,
		Landmark: req.Landmark,
	}
	if req.JoinedDate != "" {
		if t, err := time.Parse(time.RFC3339, req.JoinedDate); err == nil {
			upd.Joined = &t
		}
	}

	user, err := s.accounts.UpdateProfile(r.Context(), upd)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "Error updating user", err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Error updating user", err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"message": "User data updated successfully", "user": user})
	}
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UID   string `json:"uid"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json", err)
		return
	}

	if err := s.accounts.DeleteAccount(r.Context(), req.UID, req.Email); err != nil {
		writeError(w, http.StatusInternalServerError, "Error deleting user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, status, body)
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return srv.ListenAndServe()
}
