package inmemdb

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tundavala/escola/core/contact"
	"github.com/tundavala/escola/core/tuition"
	"github.com/tundavala/escola/core/user"
	"github.com/tundavala/escola/core/visit"
)

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = func() time.Time { return time.Now().UTC() } })
}

func TestContactRepository(t *testing.T) {
	repo := NewContactRepository(Open())
	ctx := context.Background()

	start := time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)
	names := []string{"first", "second", "third"}
	ids := make(map[string]bool)
	for i, name := range names {
		freezeClock(t, start.Add(time.Duration(i)*time.Minute))
		c, err := repo.CreateContact(ctx, contact.Contact{Name: name})
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
		assert.True(t, c.CreatedAt.Equal(start.Add(time.Duration(i)*time.Minute)))
	}

	contacts, err := repo.QueryAllContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "third", contacts[0].Name)
	assert.Equal(t, "second", contacts[1].Name)
	assert.Equal(t, "first", contacts[2].Name)
}

func TestQuery_sameCreatedAt(t *testing.T) {
	freezeClock(t, time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC))

	repo := NewTuitionRepository(Open())
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		_, err := repo.CreateCalculation(ctx, tuition.Calculation{StudentCount: i})
		require.NoError(t, err)
	}

	calcs, err := repo.QueryAllCalculations(ctx)
	require.NoError(t, err)
	require.Len(t, calcs, 5)
	for i, calc := range calcs {
		assert.Equal(t, 5-i, calc.StudentCount)
	}
}

func TestOpen_isolatedStores(t *testing.T) {
	ctx := context.Background()
	db1, db2 := Open(), Open()

	_, err := NewContactRepository(db1).CreateContact(ctx, contact.Contact{Name: "x"})
	require.NoError(t, err)

	contacts, err := NewContactRepository(db2).QueryAllContacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestAppointmentRepository(t *testing.T) {
	repo := NewAppointmentRepository(Open())
	ctx := context.Background()

	created := time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)
	freezeClock(t, created)

	appt, err := repo.CreateAppointment(ctx, visit.Appointment{Name: "Ana", Status: visit.StatusPending, GroupSize: 2})
	require.NoError(t, err)
	assert.Equal(t, appt.CreatedAt, appt.UpdatedAt)

	got, err := repo.GetAppointmentByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, appt, got)

	_, err = repo.GetAppointmentByID(ctx, "nope")
	assert.Equal(t, visit.ErrNotFound, err)

	later := created.Add(time.Hour)
	freezeClock(t, later)

	// same status: nothing is stamped
	same, err := repo.UpdateAppointmentStatus(ctx, appt.ID, func(a visit.Appointment) (visit.Appointment, error) { return a, nil })
	require.NoError(t, err)
	assert.Equal(t, created, same.UpdatedAt)

	// only the status is kept from a change, updatedAt comes from the store clock
	updated, err := repo.UpdateAppointmentStatus(ctx, appt.ID, func(a visit.Appointment) (visit.Appointment, error) {
		a.Status = visit.StatusConfirmed
		a.UpdatedAt = created.Add(-time.Hour)
		a.Name = "changed"
		a.GroupSize = 20
		return a, nil
	})
	require.NoError(t, err)
	assert.Equal(t, visit.StatusConfirmed, updated.Status)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, 2, updated.GroupSize)
	assert.Equal(t, appt.CreatedAt, updated.CreatedAt)

	// a failed change leaves the record untouched
	_, err = repo.UpdateAppointmentStatus(ctx, appt.ID, func(a visit.Appointment) (visit.Appointment, error) {
		return visit.Appointment{}, fmt.Errorf("nope")
	})
	assert.Error(t, err)
	got, _ = repo.GetAppointmentByID(ctx, appt.ID)
	assert.Equal(t, visit.StatusConfirmed, got.Status)

	_, err = repo.UpdateAppointmentStatus(ctx, "nope", func(a visit.Appointment) (visit.Appointment, error) { return a, nil })
	assert.Equal(t, visit.ErrNotFound, err)
}

func TestAppointmentRepository_concurrentStatusUpdates(t *testing.T) {
	repo := NewAppointmentRepository(Open())
	ctx := context.Background()

	appt, err := repo.CreateAppointment(ctx, visit.Appointment{Status: visit.StatusPending})
	require.NoError(t, err)

	// each change only applies to a pending appointment: exactly one may win
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 20; i++ {
		target := visit.StatusConfirmed
		if i%2 == 0 {
			target = visit.StatusCancelled
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpdateAppointmentStatus(ctx, appt.ID, func(a visit.Appointment) (visit.Appointment, error) {
				if a.Status != visit.StatusPending {
					return visit.Appointment{}, fmt.Errorf("already %s", a.Status)
				}
				a.Status = target
				return a, nil
			})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(Open())
	ctx := context.Background()

	usr, err := repo.CreateUser(ctx, user.User{Username: "director"})
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)

	_, err = repo.CreateUser(ctx, user.User{Username: "director"})
	assert.Equal(t, user.ErrUsernameExists, err)

	got, err := repo.GetUserByUsername(ctx, "director")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)

	_, err = repo.GetUserByUsername(ctx, "nope")
	assert.Equal(t, user.ErrNotFound, err)

	// usernames are compared exactly; callers normalise them
	other, err := repo.CreateUser(ctx, user.User{Username: "director2"})
	require.NoError(t, err)
	assert.NotEqual(t, usr.ID, other.ID)
}
