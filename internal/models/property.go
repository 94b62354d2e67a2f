package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoomType string

const (
	RoomSingle RoomType = "Single"
	RoomDouble RoomType = "Double"
	RoomTriple RoomType = "Triple"
)

func (r RoomType) Valid() bool {
	switch r {
	case RoomSingle, RoomDouble, RoomTriple:
		return true
	}
	return false
}

type Review struct {
	Reviewer   primitive.ObjectID `bson:"reviewer,omitempty" json:"reviewer,omitempty"`
	ReviewText string             `bson:"reviewText,omitempty" json:"reviewText,omitempty"`
	Rating     float64            `bson:"rating" json:"rating"`
}

// Property is a listing owned by one user. Rating is stored, not derived on
// read; callers that change Reviews refresh it with AverageRating.
type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Address     string             `bson:"address" json:"address"`
	Price       float64            `bson:"price" json:"price"`
	Images      []string           `bson:"images" json:"images"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
	Rating      float64            `bson:"rating" json:"rating"`
	IsVerified  bool               `bson:"isVerified" json:"isVerified"`
	RoomType    RoomType           `bson:"roomType" json:"roomType"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AverageRating averages review ratings clamped to 0..5; 0 with no reviews.
func (p *Property) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range p.Reviews {
		sum += min(max(r.Rating, 0), 5)
	}
	return sum / float64(len(p.Reviews))
}
