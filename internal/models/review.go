package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TourID        string             `bson:"tour_id" json:"tour_id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Rating        int                `bson:"rating" json:"rating"`
	Comment       string             `bson:"comment" json:"comment"`
	CommentSearch string             `bson:"comment_search" json:"-"` // diacritic-stripped copy of Comment, kept for search
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// TourInfo is the denormalized tour snapshot attached to admin listings.
type TourInfo struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Title string             `bson:"title" json:"title"`
	Code  string             `bson:"code" json:"code"`
}

// UserInfo is the author snapshot attached to public listings.
type UserInfo struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	FullName string             `bson:"fullName" json:"fullName"`
	Avatar   string             `bson:"avatar" json:"avatar"`
}

type ReviewWithTour struct {
	Review
	TourInfo *TourInfo `json:"tour_info"`
}

type ReviewWithAuthor struct {
	Review
	UserInfo *UserInfo `json:"user_info"`
}
