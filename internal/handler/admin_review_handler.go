package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travel-app/tour-review-service/internal/models"
	"travel-app/tour-review-service/internal/services"
	"travel-app/tour-review-service/internal/utils"
)

// AdminReviewHandler serves the admin review routes. Every route checks its
// capability before any store access.
type AdminReviewHandler struct {
	service ReviewService
}

func NewAdminReviewHandler(service ReviewService) *AdminReviewHandler {
	return &AdminReviewHandler{service: service}
}

// ListReviews handles GET /api/v1/admin/tour-reviews/:tourId
func (h *AdminReviewHandler) ListReviews(c *gin.Context) {
	if !utils.PermissionsFromContext(c).Has(models.CapabilityReviewView) {
		respond(c, 400, "You do not have permission to view reviews")
		return
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	query := services.ListQuery{
		Search:    c.Query("search"),
		SortKey:   c.Query("sortKey"),
		SortValue: c.Query("sortValue"),
		Page:      page,
	}

	result, err := h.service.AdminList(c.Request.Context(), c.Param("tourId"), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":         200,
		"reviews":      result.Reviews,
		"totalRecords": result.TotalRecords,
		"totalPage":    result.TotalPage,
	})
}

// DeleteReview handles DELETE /api/v1/admin/tour-reviews/delete/:id
func (h *AdminReviewHandler) DeleteReview(c *gin.Context) {
	if !utils.PermissionsFromContext(c).Has(models.CapabilityReviewDelete) {
		respond(c, 400, "You do not have permission to delete reviews")
		return
	}

	if err := h.service.AdminDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, 200, "Review deleted successfully")
}
