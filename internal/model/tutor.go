package model

// Address is the tutor's postal address.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
}

// Tutor is the human owner or guardian of a patient.
type Tutor struct {
	Base
	Name    string  `json:"name"`
	CPF     string  `json:"cpf"`
	RG      string  `json:"rg"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Address Address `json:"address"`
}

type CreateTutorRequest struct {
	Name    string  `json:"name" binding:"required"`
	CPF     string  `json:"cpf" binding:"required,cpf"`
	RG      string  `json:"rg"`
	Phone   string  `json:"phone" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Address Address `json:"address"`
}
