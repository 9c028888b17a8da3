package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"mealbox/internal/domain"
	"mealbox/internal/service"
)

type Handler struct {
	Auth    *service.AuthService
	Orders  service.OrderServiceInterface
	Status  service.StatusServiceInterface
	Reviews service.ReviewServiceInterface
	Shops   service.ShopServiceInterface
	Log     *logrus.Logger
}

func NewHandler(auth *service.AuthService, orders service.OrderServiceInterface,
	status service.StatusServiceInterface, reviews service.ReviewServiceInterface,
	shops service.ShopServiceInterface, log *logrus.Logger) *Handler {
	return &Handler{Auth: auth, Orders: orders, Status: status, Reviews: reviews, Shops: shops, Log: log}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "mealbox",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// --- auth ---

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	user, err := h.Auth.Register(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registered successfully",
		"user":    user,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	token, user, err := h.Auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// --- shops ---

func (h *Handler) listShops(w http.ResponseWriter, r *http.Request) {
	shops, err := h.Shops.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"shops": shops})
}

func (h *Handler) getShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid shop ID", http.StatusBadRequest)
		return
	}

	shop, err := h.Shops.Get(r.Context(), shopID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"shop": shop})
}

func (h *Handler) getMyShop(w http.ResponseWriter, r *http.Request) {
	actor, err := GetActor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	shop, err := h.Shops.GetForMerchant(r.Context(), actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"shop": shop})
}

func (h *Handler) updateShopSettings(w http.ResponseWriter, r *http.Request) {
	actor, err := GetActor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var settings domain.ShopSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	shop, err := h.Shops.UpdateSettings(r.Context(), actor, settings)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Shop settings updated successfully",
		"shop":    shop,
	})
}

func (h *Handler) resetDailyOrders(w http.ResponseWriter, r *http.Request) {
	actor, err := GetActor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	count, err := h.Shops.ResetDailyCounters(r.Context(), actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Daily order counts reset successfully",
		"shops":   count,
	})
}

func (h *Handler) approveMerchant(w http.ResponseWriter, r *http.Request) {
	actor, err := GetActor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	merchantID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid merchant ID", http.StatusBadRequest)
		return
	}

	shop, err := h.Shops.ProvisionForMerchant(r.Context(), actor, merchantID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Merchant approved successfully",
		"shop":    shop,
	})
}

// --- orders ---

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := GetActor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var input service.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Create(r.Context(), actor, input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"order":   order,
	})
}

func (h *Handler) myOrders(w http.ResponseWriter, r *http.Request) {
	actor, err := GetActor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, limit := pageParams(r)
	orders, pagination, err := h.Orders.ListMine(r.Context(), actor, page, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders":     orders,
		"pagination": pagination,
	})
}

func (h *Handler) merchantOrders(w http.ResponseWriter, r *http.Request) {
	actor, err := GetActor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, limit := pageParams(r)
	status := r.URL.Query().Get("status")
	orders, pagination, err := h.Orders.ListForMerchant(r.Context(), actor, status, page, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders":     orders,
		"pagination": pagination,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	actor, err := GetActor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Get(r.Context(), actor, orderID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"order": order})
}

func (h *Handler) orderQRCode(w http.ResponseWriter, r *http.Request) {
	actor, err := GetActor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	qr, err := h.Orders.PickupQRCode(r.Context(), actor, orderID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := GetActor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var input struct {
		Status              string     `json:"status"`
		EstimatedPickupTime *time.Time `json:"estimated_pickup_time,omitempty"`
		CancellationReason  string     `json:"cancellation_reason,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	order, err := h.Status.Transition(r.Context(), actor, orderID, domain.OrderStatus(input.Status), service.TransitionOpts{
		EstimatedPickupTime: input.EstimatedPickupTime,
		CancellationReason:  input.CancellationReason,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

func (h *Handler) submitReview(w http.ResponseWriter, r *http.Request) {
	actor, err := GetActor(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var input struct {
		Rating int    `json:"rating"`
		Review string `json:"review,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	order, err := h.Reviews.Submit(r.Context(), actor, orderID, input.Rating, input.Review)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Review added successfully",
		"order":   order,
	})
}

// --- helpers ---

// writeError maps service errors to status codes. Anything unexpected is
// logged with detail and surfaced as a generic server error.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrShopNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrShopClosed),
		errors.Is(err, domain.ErrNotAcceptingOrders),
		errors.Is(err, domain.ErrOrderLimitReached),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrOrderNotCompleted):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrAlreadyReviewed),
		errors.Is(err, domain.ErrOrderNumberExhausted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.Log.WithError(err).Error("request failed")
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
