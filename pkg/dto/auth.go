package dto

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RecoverRequest struct {
	Email string `json:"email"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

type SignUpResponse struct {
	UserID           string `json:"user_id"`
	ConfirmationSent bool   `json:"confirmation_sent"`
}

type ConsentURLResponse struct {
	URL string `json:"url"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
