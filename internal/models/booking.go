package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

var ErrBookingDates = errors.New("booking: endDate must be after startDate")

type Booking struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	RoomID         primitive.ObjectID `bson:"roomId" json:"roomId"`
	StartDate      time.Time          `bson:"startDate" json:"startDate"`
	EndDate        time.Time          `bson:"endDate" json:"endDate"`
	Status         BookingStatus      `bson:"status" json:"status"`
	NumberOfPeople int                `bson:"numberOfPeople" json:"numberOfPeople"`
}

// Validate reports a date range that does not move forward. Nothing in the
// request flows calls it before a write; there are no booking writes yet.
func (b *Booking) Validate() error {
	if !b.EndDate.After(b.StartDate) {
		return ErrBookingDates
	}
	return nil
}

// StatusOrDefault treats an unset status as pending.
func (b *Booking) StatusOrDefault() BookingStatus {
	if b.Status == "" {
		return BookingPending
	}
	return b.Status
}
