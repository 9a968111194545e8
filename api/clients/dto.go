package clients

type CreateClientBody struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	FileNumber string `json:"file_number"`
}

type UpdateClientBody struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FileNumber string `json:"file_number"`
	Status     string `json:"status" validate:"omitempty,oneof=active archived"`
}
