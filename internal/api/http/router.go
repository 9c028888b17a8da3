package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"mealbox/internal/domain"
)

func NewRouter(handler *Handler, tokens TokenParser) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r, tokens)
	return cors.Default().Handler(r)
}

func (h *Handler) RegisterRoutes(r *mux.Router, tokens TokenParser) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/auth/register", h.register).Methods("POST")
	r.HandleFunc("/auth/login", h.login).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/shops", h.listShops).Methods("GET")
	api.HandleFunc("/shops/merchant/my-shop", RequireRole(domain.RoleMerchant)(h.getMyShop)).Methods("GET")
	api.HandleFunc("/shops/merchant/settings", RequireRole(domain.RoleMerchant)(h.updateShopSettings)).Methods("PUT")
	api.HandleFunc("/shops/reset-daily-orders", RequireRole(domain.RoleAdmin)(h.resetDailyOrders)).Methods("POST")
	api.HandleFunc("/shops/{id}", h.getShop).Methods("GET")

	api.HandleFunc("/orders", RequireRole(domain.RoleCustomer)(h.createOrder)).Methods("POST")
	api.HandleFunc("/orders/my-orders", RequireRole(domain.RoleCustomer)(h.myOrders)).Methods("GET")
	api.HandleFunc("/orders/merchant/orders", RequireRole(domain.RoleMerchant)(h.merchantOrders)).Methods("GET")
	api.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/qrcode", h.orderQRCode).Methods("GET")
	api.HandleFunc("/orders/{id}/status", RequireRole(domain.RoleMerchant, domain.RoleAdmin)(h.updateOrderStatus)).Methods("PUT")
	api.HandleFunc("/orders/{id}/review", RequireRole(domain.RoleCustomer)(h.submitReview)).Methods("PUT")

	api.HandleFunc("/admin/merchants/{id}/approve", RequireRole(domain.RoleAdmin)(h.approveMerchant)).Methods("POST")
}

func StartServer(addr string, handler http.Handler, log *logrus.Logger) {
	log.Infof("Mealbox service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
