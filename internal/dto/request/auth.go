package request

type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required,min=2,max=100"`
	LastName        string `json:"last_name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,emailaddr"`
	Phone           string `json:"phone" validate:"required,phone"`
	Password        string `json:"password" validate:"required,min=6,strongpwd"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	BirthDate       string `json:"birth_date" validate:"required,adult"`
	Gender          string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	AgreeTerms      bool   `json:"agree_terms" validate:"required"`

	Client ClientInfo `json:"-"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`

	Client ClientInfo `json:"-"`
}

// ClientInfo is filled from the HTTP request, never from the body.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}
