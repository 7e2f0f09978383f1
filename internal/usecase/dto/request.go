package dto

// AddressInput is the structured contact address of a registration or
// profile update.
type AddressInput struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// LocationInput is an explicit GeoJSON Point override supplied by the caller
// instead of (or in addition to) a geocoded contact address.
type LocationInput struct {
	Type        string    `json:"type" validate:"required,geojson_point"`
	Coordinates []float64 `json:"coordinates" validate:"required,len=2"`
}

type RegisterAgencyRequest struct {
	Name        string       `json:"name" validate:"required,min=2"`
	Email       string       `json:"email" validate:"required,email"`
	Password    string       `json:"password" validate:"required,min=8"`
	Contact     AddressInput `json:"contact" validate:"required"`
	PhoneNumber string       `json:"phoneNumber" validate:"required"`
	Expertise   []string     `json:"expertise" validate:"required,min=1,dive,required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// UpdateProfileRequest uses pointers for fill-if-provided merge semantics:
// a nil field keeps the stored value, a present field replaces it. This
// keeps intentionally empty values (an empty expertise list) distinct from
// absent ones.
type UpdateProfileRequest struct {
	Name        *string        `json:"name" validate:"omitempty,min=2"`
	Email       *string        `json:"email" validate:"omitempty,email"`
	Contact     *AddressInput  `json:"contact"`
	PhoneNumber *string        `json:"phoneNumber"`
	Expertise   *[]string      `json:"expertise" validate:"omitempty,dive,required"`
	Location    *LocationInput `json:"location"`
}
