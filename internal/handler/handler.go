package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"teahouse-kiosk/internal/cart"
	"teahouse-kiosk/internal/kiosk"
	"teahouse-kiosk/internal/logger"
	"teahouse-kiosk/internal/metrics"
	"teahouse-kiosk/internal/order"
	"teahouse-kiosk/internal/preference"
	"teahouse-kiosk/internal/utils"

	"go.uber.org/zap"
)

type Handler struct {
	sessions *kiosk.Registry
	prefs    preference.Store
	metrics  *metrics.Kiosk
}

func New(sessions *kiosk.Registry, prefs preference.Store, m *metrics.Kiosk) *Handler {
	if m == nil {
		m = &metrics.Kiosk{}
	}
	return &Handler{sessions: sessions, prefs: prefs, metrics: m}
}

// Register mounts the kiosk API on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("GET /api/catalog", h.GetCatalog)
	mux.HandleFunc("POST /api/catalog/refresh", h.RefreshCatalog)
	mux.HandleFunc("PUT /api/catalog/category", h.SelectCategory)

	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("POST /api/cart/items", h.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{id}", h.EditItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.RemoveItem)
	mux.HandleFunc("POST /api/cart/items/{id}/quantity", h.AdjustQuantity)
	mux.HandleFunc("POST /api/cart/discount", h.ApplyDiscount)
	mux.HandleFunc("DELETE /api/cart/discount", h.ClearDiscount)
	mux.HandleFunc("PUT /api/cart/notes", h.SetNotes)

	mux.HandleFunc("POST /api/checkout", h.Checkout)

	mux.HandleFunc("GET /api/preferences", h.GetPreferences)
	mux.HandleFunc("PUT /api/preferences", h.SavePreferences)
	mux.HandleFunc("DELETE /api/preferences", h.ResetPreferences)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "OK",
		"sessions": h.sessions.Len(),
		"metrics":  h.metrics.Snapshot(),
	})
}

func (h *Handler) session(r *http.Request) (*kiosk.Session, error) {
	deviceID, ok := utils.GetDeviceIDFromContext(r.Context())
	if !ok {
		return nil, ErrMissingDevice
	}
	return h.sessions.Get(deviceID), nil
}

func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.Catalog(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toCatalogResponse(view))
}

func (h *Handler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.RefreshCatalog(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toCatalogResponse(view))
}

func (h *Handler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req categoryRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.SelectCategory(r.Context(), req.Category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toCatalogResponse(view))
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toCartResponse(s.View()))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req itemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cust, err := cart.ParseCustomization(req.Size, req.SugarLevel, req.IceLevel, req.Toppings)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r)(s.AddItem(r.Context(), req.ProductID, cust))
}

func (h *Handler) EditItem(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req itemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cust, err := cart.ParseCustomization(req.Size, req.SugarLevel, req.IceLevel, req.Toppings)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r)(s.EditItem(r.PathValue("id"), cust))
}

func (h *Handler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req quantityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r)(s.AdjustQuantity(r.PathValue("id"), req.Delta))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r)(s.RemoveItem(r.PathValue("id")))
}

func (h *Handler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req discountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r)(s.ApplyDiscount(r.Context(), req.Code))
}

func (h *Handler) ClearDiscount(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r)(s.ClearDiscount())
}

func (h *Handler) SetNotes(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req notesRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r)(s.SetNotes(req.SpecialNotes))
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req checkoutRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.Checkout(r.Context(), order.PaymentMethod(req.PaymentMethod))
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromCtx(r.Context()).Info("order placed",
		zap.String("order_id", res.Receipt.OrderID),
		zap.String("staff_id", utils.GetStaffIDFromContext(r.Context())),
	)
	utils.WriteJSON(w, http.StatusCreated, checkoutResponse{
		OrderID:    res.Receipt.OrderID,
		TotalPrice: res.Totals.GrandTotal,
		Tax:        res.Totals.Tax,
		AcceptedAt: res.Receipt.AcceptedAt,
	})
}

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := utils.GetDeviceIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingDevice)
		return
	}
	p, err := h.prefs.Get(r.Context(), deviceID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) SavePreferences(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := utils.GetDeviceIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingDevice)
		return
	}
	var p preference.Preferences
	if err := decode(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	if p.CurrentScreen == "" {
		p.CurrentScreen = preference.ScreenMenu
	}
	if err := h.prefs.Save(r.Context(), deviceID, p); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) ResetPreferences(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := utils.GetDeviceIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrMissingDevice)
		return
	}
	if err := h.prefs.Reset(r.Context(), deviceID); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, preference.Defaults())
}

// respondCart writes the cart view or the error from a session call.
func (h *Handler) respondCart(w http.ResponseWriter, r *http.Request) func(kiosk.View, error) {
	return func(view kiosk.View, err error) {
		if err != nil {
			writeError(w, r, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, toCartResponse(view))
	}
}
