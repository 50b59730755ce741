package payment

import (
	"net/http"

	"tourmarket/internal/api"
	"tourmarket/internal/booking"
)

type Handlers struct {
	Payments *Service
}

type PayRequest struct {
	BookingID string `json:"bookingId"`
}

type PayResponse struct {
	Message string           `json:"message"`
	Booking *booking.Booking `json:"booking"`
}

// Pay serves POST /payments.
func (h Handlers) Pay(w http.ResponseWriter, r *http.Request) {
	var req PayRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	b, err := h.Payments.Pay(r.Context(), api.PrincipalFromContext(r.Context()), req.BookingID)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, PayResponse{Message: "Payment successful", Booking: b})
}
