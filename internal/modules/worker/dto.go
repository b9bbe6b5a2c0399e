package worker

type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Profession *string `json:"profession,omitempty"`
	Experience *string `json:"experience,omitempty"`
	Location   *string `json:"location,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
}
