package domain

import (
	"strings"
	"time"
)

type Enquiry struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Package   Tier      `json:"package"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type EnquiryInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,looseemail"`
	Phone   string `json:"phone" validate:"required,phone10"`
	Package Tier   `json:"package" validate:"required,tier"`
	Message string `json:"message" validate:"required"`
}

func (in EnquiryInput) Normalize() EnquiryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Package = Tier(strings.TrimSpace(string(in.Package)))
	in.Message = strings.TrimSpace(in.Message)
	return in
}

func (e *Enquiry) Validate() error {
	ve := NewValidationError()
	if strings.TrimSpace(e.Name) == "" {
		ve.Add("name", "Path `name` is required.")
	}
	if strings.TrimSpace(e.Email) == "" {
		ve.Add("email", "Path `email` is required.")
	}
	if strings.TrimSpace(e.Phone) == "" {
		ve.Add("phone", "Path `phone` is required.")
	}
	if !e.Package.Valid() {
		ve.Add("package", "`"+string(e.Package)+"` is not a valid enum value for path `package`.")
	}
	if strings.TrimSpace(e.Message) == "" {
		ve.Add("message", "Path `message` is required.")
	}
	return ve.OrNil()
}
