package request

// UpdateProfileRequest only touches the fields that are present.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,emailaddr"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone"`
	BirthDate *string `json:"birth_date,omitempty" validate:"omitempty,adult"`
	Gender    *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
}
