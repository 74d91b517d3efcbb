package dto

// UserCreateRequest payload for back-office account creation.
type UserCreateRequest struct {
	Username string  `json:"username" validate:"required,max=100"`
	Password string  `json:"password" validate:"required,min=6,max=100"`
	Email    string  `json:"email" validate:"required,email,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// UserUpdateRequest payload for account patches; absent fields keep stored
// values.
type UserUpdateRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=500"`
}
