package visit

import (
	"context"
	"errors"
	"time"

	"github.com/tundavala/escola/core"
)

var ErrNotFound = errors.New("visit appointment not found")

type (
	// Repository stores appointments. It assigns ID, CreatedAt and UpdatedAt on create.
	Repository interface {
		CreateAppointment(ctx context.Context, appt Appointment) (Appointment, error)
		// QueryAllAppointments returns every appointment, most recent first.
		QueryAllAppointments(ctx context.Context) ([]Appointment, error)
		GetAppointmentByID(ctx context.Context, id string) (Appointment, error)
		// UpdateAppointmentStatus runs `change` on the stored appointment and keeps its Status.
		// UpdatedAt is stamped by the repository, on the clock that stamped CreatedAt, when the status changes.
		// No other update of the same appointment runs while `change` does.
		UpdateAppointmentStatus(ctx context.Context, id string, change func(Appointment) (Appointment, error)) (Appointment, error)
	}

	Service struct {
		repo Repository
		loc  *time.Location
	}
)

// NewService returns a Service reading visit dates in `loc`, the school's time zone.
func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc}
}

// Schedule checks the requested visit time and stores a pending appointment.
func (svc *Service) Schedule(ctx context.Context, na NewAppointment) (Appointment, error) {
	at, err := ParseVisitTime(na.VisitDate, na.VisitTime, svc.loc)
	if err != nil {
		return Appointment{}, err
	}
	if err = CheckVisitTime(at, NowFunc()); err != nil {
		return Appointment{}, err
	}

	return svc.repo.CreateAppointment(ctx, Appointment{
		Name:            na.Name,
		Email:           na.Email,
		Phone:           core.StringPtr(na.Phone),
		VisitDate:       at,
		VisitTime:       na.VisitTime,
		VisitType:       Type(na.VisitType),
		GroupSize:       na.groupSize(),
		SpecialRequests: core.StringPtr(na.SpecialRequests),
		Status:          StatusPending,
	})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Appointment, error) {
	return svc.repo.QueryAllAppointments(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	return svc.repo.GetAppointmentByID(ctx, id)
}

// UpdateStatus moves an appointment to `status`.
func (svc *Service) UpdateStatus(ctx context.Context, id string, status Status) (Appointment, error) {
	return svc.repo.UpdateAppointmentStatus(ctx, id, func(appt Appointment) (Appointment, error) {
		next, err := transition(appt.Status, status)
		if err != nil {
			return Appointment{}, err
		}
		appt.Status = next
		return appt, nil
	})
}
