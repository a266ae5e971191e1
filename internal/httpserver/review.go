package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/agrilink/internal/service"
	"github.com/Skotchmaster/agrilink/internal/transport"
)

type ReviewHandler struct {
	Reviews *service.ReviewService
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	id, err := queryID(c, "producer_id")
	if err != nil {
		return err
	}
	producerID := uuid.Nil
	if id != nil {
		producerID = *id
	}

	out, err := h.Reviews.ListReviews(c.Request().Context(), producerID)
	if err != nil {
		return fail(c, "list_reviews_error", err)
	}
	return ok(c, http.StatusOK, out)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req transport.CreateReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	review, err := h.Reviews.CreateReview(c.Request().Context(), sessionFrom(c), req)
	if err != nil {
		return fail(c, "create_review_error", err)
	}
	return ok(c, http.StatusCreated, review)
}
