package handler

const headerIdempotencyKey = "Idempotency-Key"

type createBookingRequest struct {
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"`
	EventType string `json:"eventType" validate:"required"`
	EventDate string `json:"eventDate" validate:"required"`
	EventTime string `json:"eventTime" validate:"required"`
	Location  string `json:"location"`
	Message   string `json:"message"`
}

type updateBookingRequest struct {
	ID     string `json:"id"     validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type createContactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

type updateContactRequest struct {
	ID     string `json:"id"     validate:"required"`
	Status string `json:"status" validate:"required,oneof=new read replied"`
}
