package handler

import (
	"net/http"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/service"
)

type placeOrderRequest struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Lessons []string `json:"lessons"`
}

func PlaceOrderHandler(booking *service.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placeOrderRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		order, err := booking.PlaceOrder(r.Context(), model.OrderRequest{
			Name:      req.Name,
			Phone:     req.Phone,
			LessonIDs: req.Lessons,
		})
		if err != nil {
			writeServiceError(w, r, err, "Error placing order")
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{
			Message: "Order placed successfully",
			OrderID: order.ID,
		})
	}
}
