package domain

import "time"

// ContactStatus tracks how far a message has been handled. "replied" may be
// set directly from "new".
type ContactStatus string

const (
	ContactNew     ContactStatus = "new"
	ContactRead    ContactStatus = "read"
	ContactReplied ContactStatus = "replied"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactRead, ContactReplied:
		return true
	}
	return false
}

// Contact is a message left through the public contact form.
type Contact struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	Name      string        `json:"name" bson:"name"`
	Email     string        `json:"email" bson:"email"`
	Phone     string        `json:"phone,omitempty" bson:"phone,omitempty"`
	Message   string        `json:"message" bson:"message"`
	Status    ContactStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}
