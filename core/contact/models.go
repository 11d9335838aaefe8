package contact

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tundavala/escola/core"
)

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"` // UTC
}

// NewContact contains the fields of the contact form.
type NewContact struct {
	Name    string `json:"name" validate:"required,notblank"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"required,notblank"`
	Message string `json:"message" validate:"required,notblank"`
}

func (nc *NewContact) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Email = core.CleanString(nc.Email, true /* lower */)
	nc.Phone = core.CleanString(nc.Phone)
	nc.Subject = core.CleanString(nc.Subject)
	nc.Message = core.CleanString(nc.Message)
	return validate.Struct(nc)
}
