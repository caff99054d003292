package handler

type createUserRequest struct {
	Email       string   `json:"email"    validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=6"`
	Name        string   `json:"name"     validate:"required"`
	Role        string   `json:"role"     validate:"omitempty,oneof=admin user viewer"`
	Permissions []string `json:"permissions"`
	Active      *bool    `json:"active"`
}

// updateUserRequest mirrors the admin edit form. Empty strings leave the
// field unchanged.
type updateUserRequest struct {
	ID          string    `json:"id"       validate:"required"`
	Email       *string   `json:"email"`
	Name        *string   `json:"name"`
	Role        *string   `json:"role"`
	Permissions *[]string `json:"permissions"`
	Active      *bool     `json:"active"`
	Password    *string   `json:"password"`
}
