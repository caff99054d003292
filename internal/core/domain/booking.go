package domain

import "time"

// BookingStatus is the admin-facing lifecycle of a booking request.
// Transitions are not enforced: any status may be set from any other.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking is a lead captured by the public booking form.
type Booking struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	Name      string        `json:"name" bson:"name"`
	Email     string        `json:"email" bson:"email"`
	Phone     string        `json:"phone,omitempty" bson:"phone,omitempty"`
	EventType string        `json:"eventType" bson:"event_type"`
	EventDate time.Time     `json:"eventDate" bson:"event_date"`
	EventTime string        `json:"eventTime" bson:"event_time"`
	Location  string        `json:"location,omitempty" bson:"location,omitempty"`
	Message   string        `json:"message,omitempty" bson:"message,omitempty"`
	Status    BookingStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}
