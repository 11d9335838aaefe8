package visit

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tundavala/escola/core"
)

type Type string

const (
	TypeFacilities Type = "facilities"
	TypeMeeting    Type = "meeting"
	TypeEnrollment Type = "enrollment"
)

const defaultGroupSize = 1

type Appointment struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone"`
	VisitDate       time.Time `json:"visitDate"` // date and time of the visit, school time zone
	VisitTime       string    `json:"visitTime"` // HH:MM
	VisitType       Type      `json:"visitType"`
	GroupSize       int       `json:"groupSize"`
	SpecialRequests *string   `json:"specialRequests"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"` // UTC
	UpdatedAt       time.Time `json:"updatedAt"` // UTC
}

// NewAppointment contains the fields of the visit scheduler form.
type NewAppointment struct {
	Name            string `json:"name" validate:"required,notblank"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	VisitDate       string `json:"visitDate" validate:"required,datetime=2006-01-02"`
	VisitTime       string `json:"visitTime" validate:"required,datetime=15:04"`
	VisitType       string `json:"visitType" validate:"required,oneof=facilities meeting enrollment"`
	GroupSize       *int   `json:"groupSize" validate:"required,min=1,max=20"`
	SpecialRequests string `json:"specialRequests"`
}

func (na *NewAppointment) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.Phone = core.CleanString(na.Phone)
	na.VisitDate = core.CleanString(na.VisitDate)
	na.VisitTime = core.CleanString(na.VisitTime)
	na.VisitType = core.CleanString(na.VisitType)
	na.SpecialRequests = core.CleanString(na.SpecialRequests)
	if na.GroupSize == nil {
		size := defaultGroupSize
		na.GroupSize = &size
	}
	return validate.Struct(na)
}

func (na NewAppointment) groupSize() int {
	if na.GroupSize == nil {
		return defaultGroupSize
	}
	return *na.GroupSize
}

// StatusUpdate is the body of an administrative status change.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

func (su *StatusUpdate) Validate(validate *validator.Validate) error {
	su.Status = core.CleanString(su.Status)
	return validate.Struct(su)
}
