package inmemdb

import (
	"context"

	"github.com/tundavala/escola/core/visit"
)

type appointmentRepository struct {
	db *table[visit.Appointment]
}

var _ visit.Repository = (*appointmentRepository)(nil) // interface compliance check

func NewAppointmentRepository(db *DB) visit.Repository {
	return &appointmentRepository{db: db.appointment}
}

func (repo *appointmentRepository) CreateAppointment(_ context.Context, appt visit.Appointment) (visit.Appointment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	appt.ID = repo.db.newID()
	appt.CreatedAt = nowFunc()
	appt.UpdatedAt = appt.CreatedAt
	repo.db.insert(appt.ID, appt.CreatedAt, appt)
	return appt, nil
}

func (repo *appointmentRepository) QueryAllAppointments(context.Context) ([]visit.Appointment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.query(), nil
}

func (repo *appointmentRepository) GetAppointmentByID(_ context.Context, id string) (visit.Appointment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if r, ok := repo.db.rows[id]; ok {
		return r.val, nil
	}
	return visit.Appointment{}, visit.ErrNotFound
}

func (repo *appointmentRepository) UpdateAppointmentStatus(
	_ context.Context,
	id string,
	change func(visit.Appointment) (visit.Appointment, error),
) (visit.Appointment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	r, ok := repo.db.rows[id]
	if !ok {
		return visit.Appointment{}, visit.ErrNotFound
	}
	changed, err := change(r.val)
	if err != nil {
		return visit.Appointment{}, err
	}
	if changed.Status != r.val.Status {
		r.val.Status = changed.Status
		r.val.UpdatedAt = nowFunc()
	}
	return r.val, nil
}
