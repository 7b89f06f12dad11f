package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"travel-app/tour-review-service/internal/models"
	"travel-app/tour-review-service/internal/services"
	"travel-app/tour-review-service/internal/utils"
)

type ReviewService interface {
	Create(ctx context.Context, tourID string, userID primitive.ObjectID, rating int, comment string) (*models.Review, error)
	ListByTour(ctx context.Context, tourID string) ([]models.ReviewWithAuthor, error)
	Summary(ctx context.Context, tourID string) (*models.RatingSummary, error)
	Delete(ctx context.Context, reviewID, requesterID string, isAdmin bool) error
	AdminList(ctx context.Context, tourID string, q services.ListQuery) (*services.ListResult, error)
	AdminDelete(ctx context.Context, reviewID string) error
}

// ReviewHandler serves the end-user review routes.
type ReviewHandler struct {
	service ReviewService
}

func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// CreateReviewRequest is the JSON payload for submitting a review.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview handles POST /api/v1/tour-reviews/:tourId
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, 400, "Invalid input")
		return
	}
	if err := utils.GetValidator().Struct(req); err != nil {
		respond(c, 400, utils.JoinErrors(err))
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.GetString(utils.ContextUserID))
	if err != nil {
		respond(c, 401, "Invalid user identity")
		return
	}

	review, err := h.service.Create(c.Request.Context(), c.Param("tourId"), userID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Review submitted successfully",
		"review":  review,
	})
}

// GetReviews handles GET /api/v1/tour-reviews/get/:tourId
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.service.ListByTour(c.Request.Context(), c.Param("tourId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Reviews fetched successfully",
		"reviews": reviews,
	})
}

// GetSummary handles GET /api/v1/tour-reviews/summary/:tourId
func (h *ReviewHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.Param("tourId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "Rating summary fetched successfully",
		"summary": summary,
	})
}

// DeleteReview handles DELETE /api/v1/tour-reviews/delete/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	requesterID := c.GetString(utils.ContextUserID)
	isAdmin := utils.PermissionsFromContext(c).Has(models.CapabilityReviewDelete)

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), requesterID, isAdmin); err != nil {
		respondError(c, err)
		return
	}
	respond(c, 200, "Review deleted successfully")
}

// respond writes the uniform envelope. The application code travels in the
// body; the transport status stays 200 so every caller checks `code`.
func respond(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, gin.H{"code": code, "message": message})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrTourNotFound):
		respond(c, 400, "Tour not found")
	case errors.Is(err, models.ErrDuplicate):
		respond(c, 409, "You have already reviewed this tour")
	case errors.Is(err, models.ErrValidation):
		respond(c, 400, "Rating must be an integer between 1 and 5")
	case errors.Is(err, models.ErrInvalidID):
		respond(c, 400, "Invalid review id")
	case errors.Is(err, models.ErrNotFound):
		respond(c, 404, "Review not found")
	case errors.Is(err, models.ErrForbidden):
		respond(c, 403, "You do not have permission to delete this review")
	default:
		respond(c, 500, "Error: "+err.Error())
	}
}
