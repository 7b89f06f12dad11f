package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"travel-app/tour-review-service/internal/models"
	"travel-app/tour-review-service/internal/services"
	"travel-app/tour-review-service/internal/utils"
)

type stubReviewService struct {
	createErr      error
	deleteErr      error
	adminDeleteErr error

	createCalled      bool
	deleteCalled      bool
	adminListCalled   bool
	adminDeleteCalled bool

	listResult *services.ListResult
}

func (s *stubReviewService) Create(ctx context.Context, tourID string, userID primitive.ObjectID, rating int, comment string) (*models.Review, error) {
	s.createCalled = true
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Review{TourID: tourID, UserID: userID, Rating: rating, Comment: comment}, nil
}

func (s *stubReviewService) ListByTour(ctx context.Context, tourID string) ([]models.ReviewWithAuthor, error) {
	return []models.ReviewWithAuthor{}, nil
}

func (s *stubReviewService) Summary(ctx context.Context, tourID string) (*models.RatingSummary, error) {
	return &models.RatingSummary{TotalReviews: 0, Average: 0}, nil
}

func (s *stubReviewService) Delete(ctx context.Context, reviewID, requesterID string, isAdmin bool) error {
	s.deleteCalled = true
	return s.deleteErr
}

func (s *stubReviewService) AdminList(ctx context.Context, tourID string, q services.ListQuery) (*services.ListResult, error) {
	s.adminListCalled = true
	return s.listResult, nil
}

func (s *stubReviewService) AdminDelete(ctx context.Context, reviewID string) error {
	s.adminDeleteCalled = true
	return s.adminDeleteErr
}

func identity(userID string, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ContextUserID, userID)
		c.Set(utils.ContextPermissions, models.NewPermissionSet(permissions))
		c.Next()
	}
}

func setupRouter(stub *stubReviewService, auth gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	reviewHandler := NewReviewHandler(stub)
	adminHandler := NewAdminReviewHandler(stub)

	api := router.Group("/api/v1")
	reviews := api.Group("/tour-reviews")
	reviews.GET("/get/:tourId", reviewHandler.GetReviews)
	reviews.GET("/summary/:tourId", reviewHandler.GetSummary)
	protected := reviews.Group("")
	protected.Use(auth)
	protected.POST("/:tourId", reviewHandler.CreateReview)
	protected.DELETE("/delete/:id", reviewHandler.DeleteReview)

	admin := api.Group("/admin/tour-reviews")
	admin.Use(auth)
	admin.GET("/:tourId", adminHandler.ListReviews)
	admin.DELETE("/delete/:id", adminHandler.DeleteReview)

	return router
}

func doRequest(router *gin.Engine, method, path, body string) map[string]interface{} {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return parsed
}

func envelopeCode(t *testing.T, body map[string]interface{}) int {
	t.Helper()
	code, ok := body["code"].(float64)
	if !ok {
		t.Fatalf("response missing code: %v", body)
	}
	return int(code)
}

func TestAdminListDeniedWithoutCapability(t *testing.T) {
	stub := &stubReviewService{}
	router := setupRouter(stub, identity("admin-1", "review_delete"))

	body := doRequest(router, http.MethodGet, "/api/v1/admin/tour-reviews/tour1", "")

	if got := envelopeCode(t, body); got != 400 {
		t.Errorf("code = %d, want 400", got)
	}
	if stub.adminListCalled {
		t.Error("store must not be touched on permission deny")
	}
}

func TestAdminListReturnsPage(t *testing.T) {
	stub := &stubReviewService{listResult: &services.ListResult{
		Reviews:      []models.ReviewWithTour{},
		TotalRecords: 23,
		TotalPage:    3,
	}}
	router := setupRouter(stub, identity("admin-1", "review_view"))

	body := doRequest(router, http.MethodGet, "/api/v1/admin/tour-reviews/tour1?page=2", "")

	if got := envelopeCode(t, body); got != 200 {
		t.Errorf("code = %d, want 200", got)
	}
	if body["totalRecords"].(float64) != 23 || body["totalPage"].(float64) != 3 {
		t.Errorf("pagination fields = %v/%v, want 23/3", body["totalRecords"], body["totalPage"])
	}
}

func TestAdminDeleteDeniedWithoutCapability(t *testing.T) {
	stub := &stubReviewService{}
	router := setupRouter(stub, identity("admin-1", "review_view"))

	body := doRequest(router, http.MethodDelete, "/api/v1/admin/tour-reviews/delete/abc", "")

	if got := envelopeCode(t, body); got != 400 {
		t.Errorf("code = %d, want 400", got)
	}
	if stub.adminDeleteCalled {
		t.Error("store must not be touched on permission deny")
	}
}

func TestAdminDeleteNotFound(t *testing.T) {
	stub := &stubReviewService{adminDeleteErr: models.ErrNotFound}
	router := setupRouter(stub, identity("admin-1", "review_delete"))

	body := doRequest(router, http.MethodDelete, "/api/v1/admin/tour-reviews/delete/abc", "")

	if got := envelopeCode(t, body); got != 404 {
		t.Errorf("code = %d, want 404", got)
	}
}

func TestCreateReviewSuccess(t *testing.T) {
	stub := &stubReviewService{}
	router := setupRouter(stub, identity(primitive.NewObjectID().Hex()))

	body := doRequest(router, http.MethodPost, "/api/v1/tour-reviews/tour1", `{"rating":5,"comment":"tuyệt vời"}`)

	if got := envelopeCode(t, body); got != 200 {
		t.Errorf("code = %d, want 200", got)
	}
	if !stub.createCalled {
		t.Error("expected service create call")
	}
}

func TestCreateReviewRatingOutOfRange(t *testing.T) {
	for _, payload := range []string{`{"rating":0}`, `{"rating":6}`} {
		stub := &stubReviewService{}
		router := setupRouter(stub, identity(primitive.NewObjectID().Hex()))

		body := doRequest(router, http.MethodPost, "/api/v1/tour-reviews/tour1", payload)

		if got := envelopeCode(t, body); got != 400 {
			t.Errorf("payload %s: code = %d, want 400", payload, got)
		}
		if stub.createCalled {
			t.Errorf("payload %s: service must not be called", payload)
		}
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	stub := &stubReviewService{createErr: models.ErrDuplicate}
	router := setupRouter(stub, identity(primitive.NewObjectID().Hex()))

	body := doRequest(router, http.MethodPost, "/api/v1/tour-reviews/tour1", `{"rating":4,"comment":"again"}`)

	if got := envelopeCode(t, body); got != 409 {
		t.Errorf("code = %d, want 409", got)
	}
}

func TestDeleteReviewForbidden(t *testing.T) {
	stub := &stubReviewService{deleteErr: models.ErrForbidden}
	router := setupRouter(stub, identity(primitive.NewObjectID().Hex()))

	body := doRequest(router, http.MethodDelete, "/api/v1/tour-reviews/delete/abc", "")

	if got := envelopeCode(t, body); got != 403 {
		t.Errorf("code = %d, want 403", got)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	stub := &stubReviewService{}
	router := setupRouter(stub, identity(""))

	body := doRequest(router, http.MethodGet, "/api/v1/tour-reviews/summary/tour1", "")

	if got := envelopeCode(t, body); got != 200 {
		t.Errorf("code = %d, want 200", got)
	}
	if _, ok := body["summary"]; !ok {
		t.Error("response missing summary payload")
	}
}
