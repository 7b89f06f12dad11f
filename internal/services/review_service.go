package services

import (
	"context"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"travel-app/tour-review-service/internal/models"
	"travel-app/tour-review-service/internal/repository"
	"travel-app/tour-review-service/internal/utils"
)

const PageSize = 10

var tourCacheTTL = 30 * time.Second

type ReviewService struct {
	reviews *repository.ReviewRepository
	tours   *repository.TourRepository
	users   *repository.UserRepository
	cache   *utils.RedisClient
}

func NewReviewService(
	rr *repository.ReviewRepository,
	tr *repository.TourRepository,
	ur *repository.UserRepository,
	cache *utils.RedisClient,
) *ReviewService {
	return &ReviewService{reviews: rr, tours: tr, users: ur, cache: cache}
}

// Create inserts a new review for the tour. The unique (tour_id, user_id)
// index turns a repeat submission into models.ErrDuplicate.
func (s *ReviewService) Create(ctx context.Context, tourID string, userID primitive.ObjectID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, models.ErrValidation
	}

	exists, err := s.tours.Exists(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrTourNotFound
	}

	review := &models.Review{
		TourID:        tourID,
		UserID:        userID,
		Rating:        rating,
		Comment:       comment,
		CommentSearch: utils.RemoveDiacritics(comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByTour returns every review of the tour with author display fields
// joined in via a single batched user lookup.
func (s *ReviewService) ListByTour(ctx context.Context, tourID string) ([]models.ReviewWithAuthor, error) {
	exists, err := s.tours.Exists(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrTourNotFound
	}

	reviews, err := s.reviews.GetByTourID(ctx, tourID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]primitive.ObjectID, 0, len(reviews))
	seen := make(map[primitive.ObjectID]bool, len(reviews))
	for _, review := range reviews {
		if !seen[review.UserID] {
			seen[review.UserID] = true
			userIDs = append(userIDs, review.UserID)
		}
	}
	authors, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	result := make([]models.ReviewWithAuthor, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, models.ReviewWithAuthor{
			Review:   review,
			UserInfo: authors[review.UserID],
		})
	}
	return result, nil
}

// Summary derives the rating breakdown for a tour from its current reviews.
func (s *ReviewService) Summary(ctx context.Context, tourID string) (*models.RatingSummary, error) {
	exists, err := s.tours.Exists(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrTourNotFound
	}

	reviews, err := s.reviews.GetByTourID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	summary := BuildSummary(reviews)
	return &summary, nil
}

// Delete removes the review when the requester is its author, or an admin
// holding the delete capability.
func (s *ReviewService) Delete(ctx context.Context, reviewID, requesterID string, isAdmin bool) error {
	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return models.ErrInvalidID
	}

	review, err := s.reviews.GetByID(ctx, oid)
	if err != nil {
		return err
	}
	if review.UserID.Hex() != requesterID && !isAdmin {
		return models.ErrForbidden
	}
	return s.reviews.Delete(ctx, oid)
}

// AdminDelete removes any review by id. The capability check happens at the
// handler, before this is reached.
func (s *ReviewService) AdminDelete(ctx context.Context, reviewID string) error {
	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return models.ErrInvalidID
	}
	return s.reviews.Delete(ctx, oid)
}

type ListQuery struct {
	Search    string
	SortKey   string
	SortValue string
	Page      int
}

type ListResult struct {
	Reviews      []models.ReviewWithTour `json:"reviews"`
	TotalRecords int64                   `json:"totalRecords"`
	TotalPage    int                     `json:"totalPage"`
}

// AdminList runs the filter/sort/pagination pipeline for the admin listing.
// The total count always reflects the whole filtered set, not the page window.
func (s *ReviewService) AdminList(ctx context.Context, tourID string, q ListQuery) (*ListResult, error) {
	filter := BuildListFilter(tourID, q.Search)

	total, err := s.reviews.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	skip, totalPage := Paginate(q.Page, PageSize, total)

	reviews, err := s.reviews.FindPage(ctx, filter, SortSpec(q.SortKey, q.SortValue), skip, PageSize)
	if err != nil {
		return nil, err
	}

	enriched, err := s.attachTourInfo(ctx, reviews)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Reviews:      enriched,
		TotalRecords: total,
		TotalPage:    totalPage,
	}, nil
}

// attachTourInfo joins tour snapshots onto the page in one batched lookup,
// fronted by the snapshot cache.
func (s *ReviewService) attachTourInfo(ctx context.Context, reviews []models.Review) ([]models.ReviewWithTour, error) {
	snapshots := make(map[string]*models.TourInfo)
	missing := make([]string, 0)
	seen := make(map[string]bool)
	for _, review := range reviews {
		if seen[review.TourID] {
			continue
		}
		seen[review.TourID] = true

		var cached models.TourInfo
		if s.cache != nil && s.cache.Get(ctx, "tour_info:"+review.TourID, &cached) == nil {
			snapshots[review.TourID] = &cached
			continue
		}
		missing = append(missing, review.TourID)
	}

	if len(missing) > 0 {
		fetched, err := s.tours.GetByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for id, info := range fetched {
			snapshots[id] = info
			if s.cache != nil {
				if err := s.cache.Set(ctx, "tour_info:"+id, info, tourCacheTTL); err != nil {
					log.Printf("Failed to cache tour snapshot %s: %v", id, err)
				}
			}
		}
	}

	result := make([]models.ReviewWithTour, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, models.ReviewWithTour{
			Review:   review,
			TourInfo: snapshots[review.TourID],
		})
	}
	return result, nil
}

// BuildListFilter restricts to one tour and, when a search term is present,
// matches it case-insensitively against the comment, both as typed and with
// diacritics stripped on both sides. The term is quoted so regex
// metacharacters match literally.
func BuildListFilter(tourID, search string) bson.M {
	filter := bson.M{"tour_id": tourID}
	if search == "" {
		return filter
	}

	raw := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	normalized := primitive.Regex{Pattern: regexp.QuoteMeta(utils.RemoveDiacritics(search)), Options: "i"}
	filter["$or"] = bson.A{
		bson.M{"comment": raw},
		bson.M{"comment_search": normalized},
	}
	return filter
}

// storedSortFields are the review fields the store can actually order by.
// Author-relation keys are coerced to the stored reference id, since the
// author document is never joined before sorting.
var storedSortFields = map[string]string{
	"rating":     "rating",
	"comment":    "comment",
	"created_at": "created_at",
	"createdAt":  "created_at",
	"updated_at": "updated_at",
	"updatedAt":  "updated_at",
	"fullName":   "user_id",
	"username":   "user_id",
	"email":      "user_id",
}

// SortSpec maps the query's sortKey/sortValue pair onto a Mongo sort document.
// Both must be present, otherwise natural order is kept.
func SortSpec(sortKey, sortValue string) bson.D {
	if sortKey == "" || sortValue == "" {
		return nil
	}
	field, ok := storedSortFields[sortKey]
	if !ok {
		return nil
	}

	direction := 1
	switch sortValue {
	case "desc", "-1":
		direction = -1
	}
	return bson.D{{Key: field, Value: direction}}
}

// Paginate turns a 1-based page number into the (skip, totalPage) pair for a
// fixed page size. totalPage never drops below 1.
func Paginate(page, pageSize int, total int64) (skip int64, totalPage int) {
	if page < 1 {
		page = 1
	}
	skip = int64(page-1) * int64(pageSize)

	totalPage = int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPage < 1 {
		totalPage = 1
	}
	return skip, totalPage
}
