package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TorqueWorks01/garage-scheduler/internal/audit"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/appointment"
	schedDomain "github.com/TorqueWorks01/garage-scheduler/internal/domain/schedule"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
	"github.com/TorqueWorks01/garage-scheduler/internal/notify"
)

// ======================================================
// FAKES
// ======================================================

type memSink struct {
	mu      sync.Mutex
	actions []string
}

func (m *memSink) Log(userID *uint, action, entity string, entityID *uint, metadata any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, action)
	return nil
}

func newAudit() *audit.Dispatcher {
	return audit.NewDispatcher(&memSink{}, zap.NewNop())
}

type memSaver struct {
	mu    sync.Mutex
	saved []models.Notification
}

func (m *memSaver) Save(n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, *n)
	return nil
}

func (m *memSaver) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

func (m *memSaver) last() models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved[len(m.saved)-1]
}

type fakeRepo struct {
	nextID       uint
	services     []models.Service
	appointments map[uint]*models.Appointment
	unavailable  []models.Schedule
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, appointments: map[uint]*models.Appointment{}}
}

func (f *fakeRepo) seed(ap models.Appointment) *models.Appointment {
	ap.ID = f.nextID
	f.nextID++
	f.appointments[ap.ID] = &ap
	return &ap
}

func (f *fakeRepo) GetActiveServices(ctx context.Context, ids []uint) ([]models.Service, error) {
	want := map[uint]bool{}
	for _, id := range ids {
		want[id] = true
	}

	var out []models.Service
	for _, svc := range f.services {
		if svc.Active && want[svc.ID] {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeRepo) Create(ctx context.Context, ap *models.Appointment) error {
	ap.ID = f.nextID
	f.nextID++
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) GetForCustomer(ctx context.Context, appointmentID, customerID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok || ap.CustomerID != customerID || ap.Deleted {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) GetForMechanic(ctx context.Context, appointmentID, mechanicID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok || ap.MechanicID == nil || *ap.MechanicID != mechanicID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, ap *models.Appointment) error {
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) ListForCustomer(ctx context.Context, customerID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.CustomerID == customerID && !ap.Deleted {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListForMechanic(ctx context.Context, mechanicID uint, filter domain.ListFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.MechanicID != nil && *ap.MechanicID == mechanicID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(ctx context.Context, filter domain.ListFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		out = append(out, *ap)
	}
	return out, nil
}

func (f *fakeRepo) FindUnavailableWindows(ctx context.Context, mechanicID uint, instant time.Time) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, s := range f.unavailable {
		if s.MechanicID == mechanicID && schedDomain.Contains(s.StartTime, s.EndTime, instant) {
			out = append(out, s)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// HELPERS
// ======================================================

var now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

const (
	customerID uint = 3
	mechID     uint = 7
)

func createInput(in time.Duration) CreateAppointmentInput {
	return CreateAppointmentInput{
		CustomerID:        customerID,
		ScheduledAt:       now.Add(in),
		Items:             []LineItemInput{{ServiceID: 1, Quantity: 1}},
		Now:               now,
		MinAdvanceMinutes: 120,
	}
}

func oilChange() models.Service {
	return models.Service{ID: 1, Name: "Oil Change", Price: 49.90, Active: true}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("prices line items from the catalog", func(t *testing.T) {
		repo := newFakeRepo()
		repo.services = []models.Service{
			oilChange(),
			{ID: 2, Name: "Brake Job", Price: 250, Active: true},
		}

		uc := NewCreateAppointment(repo, newAudit())

		in := createInput(4 * time.Hour)
		in.Items = []LineItemInput{
			{ServiceID: 1, Quantity: 2},
			{ServiceID: 2, Quantity: 1},
		}

		ap, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "pending", ap.Status)
		assert.Nil(t, ap.MechanicID)
		require.Len(t, ap.Items, 2)
		assert.Equal(t, 49.90, ap.Items[0].Price)
		assert.Equal(t, 2, ap.Items[0].Quantity)
		assert.Equal(t, 250.0, ap.Items[1].Price)
	})

	t.Run("too soon", func(t *testing.T) {
		repo := newFakeRepo()
		repo.services = []models.Service{oilChange()}

		uc := NewCreateAppointment(repo, newAudit())

		_, err := uc.Execute(ctx, createInput(time.Hour))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "too_soon"))
	})

	t.Run("no services", func(t *testing.T) {
		uc := NewCreateAppointment(newFakeRepo(), newAudit())

		in := createInput(4 * time.Hour)
		in.Items = nil

		_, err := uc.Execute(ctx, in)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "no_services"))
	})

	t.Run("zero quantity", func(t *testing.T) {
		uc := NewCreateAppointment(newFakeRepo(), newAudit())

		in := createInput(4 * time.Hour)
		in.Items = []LineItemInput{{ServiceID: 1, Quantity: 0}}

		_, err := uc.Execute(ctx, in)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))
	})

	t.Run("inactive service", func(t *testing.T) {
		repo := newFakeRepo()
		svc := oilChange()
		svc.Active = false
		repo.services = []models.Service{svc}

		uc := NewCreateAppointment(repo, newAudit())

		_, err := uc.Execute(ctx, createInput(4*time.Hour))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})

	t.Run("preferred mechanic is unavailable", func(t *testing.T) {
		repo := newFakeRepo()
		repo.services = []models.Service{oilChange()}
		repo.unavailable = []models.Schedule{{
			ID:         9,
			MechanicID: mechID,
			StartTime:  now,
			EndTime:    now.Add(24 * time.Hour),
			Kind:       "unavailable",
			Status:     "approved",
		}}

		uc := NewCreateAppointment(repo, newAudit())

		mid := mechID
		in := createInput(4 * time.Hour)
		in.MechanicID = &mid

		_, err := uc.Execute(ctx, in)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "mechanic_unavailable"))

		var be *httperr.BusinessError
		require.ErrorAs(t, err, &be)
		assert.NotEmpty(t, be.Detail["conflicts"])
	})
}

// ======================================================
// STATUS UPDATES
// ======================================================

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	seedAssigned := func(repo *fakeRepo, status string) *models.Appointment {
		mid := mechID
		return repo.seed(models.Appointment{
			CustomerID:  customerID,
			MechanicID:  &mid,
			ScheduledAt: now.Add(4 * time.Hour),
			Status:      status,
		})
	}

	input := func(id uint, status string) UpdateStatusInput {
		return UpdateStatusInput{
			AppointmentID: id,
			MechanicID:    mechID,
			Status:        status,
			Now:           now,
		}
	}

	t.Run("advances one step and notifies the customer", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedAssigned(repo, "pending")

		saver := &memSaver{}
		uc := NewUpdateStatus(repo, newAudit(), notify.NewDispatcher(saver, zap.NewNop()))

		updated, err := uc.Execute(ctx, input(ap.ID, "confirmed"))
		require.NoError(t, err)
		assert.Equal(t, "confirmed", updated.Status)

		require.Eventually(t, func() bool { return saver.count() == 1 }, time.Second, 10*time.Millisecond)
		n := saver.last()
		assert.Equal(t, customerID, n.UserID)
		assert.Equal(t, "confirmed", n.Status)
		assert.Equal(t, notify.MessageFor("confirmed"), n.Message)
	})

	t.Run("completion stamps completed_at", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedAssigned(repo, "in_progress")

		uc := NewUpdateStatus(repo, newAudit(), notify.NewDispatcher(&memSaver{}, zap.NewNop()))

		updated, err := uc.Execute(ctx, input(ap.ID, "completed"))
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedAt)
		assert.Equal(t, now, *updated.CompletedAt)
	})

	t.Run("rejects a skipped step", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedAssigned(repo, "pending")

		saver := &memSaver{}
		uc := NewUpdateStatus(repo, newAudit(), notify.NewDispatcher(saver, zap.NewNop()))

		_, err := uc.Execute(ctx, input(ap.ID, "completed"))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
		assert.Equal(t, "pending", repo.appointments[ap.ID].Status)
		assert.Zero(t, saver.count())
	})

	t.Run("terminal state", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedAssigned(repo, "completed")

		uc := NewUpdateStatus(repo, newAudit(), notify.NewDispatcher(&memSaver{}, zap.NewNop()))

		_, err := uc.Execute(ctx, input(ap.ID, "cancelled"))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "terminal_state"))
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedAssigned(repo, "pending")

		uc := NewUpdateStatus(repo, newAudit(), notify.NewDispatcher(&memSaver{}, zap.NewNop()))

		_, err := uc.Execute(ctx, input(ap.ID, "done"))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	})

	t.Run("another mechanic's appointment is invisible", func(t *testing.T) {
		repo := newFakeRepo()
		other := mechID + 1
		ap := repo.seed(models.Appointment{
			CustomerID:  customerID,
			MechanicID:  &other,
			ScheduledAt: now.Add(4 * time.Hour),
			Status:      "pending",
		})

		uc := NewUpdateStatus(repo, newAudit(), notify.NewDispatcher(&memSaver{}, zap.NewNop()))

		_, err := uc.Execute(ctx, input(ap.ID, "confirmed"))
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})
}

// ======================================================
// CANCEL / REVIEW / SOFT DELETE
// ======================================================

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels and notifies", func(t *testing.T) {
		repo := newFakeRepo()
		ap := repo.seed(models.Appointment{
			CustomerID:  customerID,
			ScheduledAt: now.Add(4 * time.Hour),
			Status:      "confirmed",
		})

		saver := &memSaver{}
		uc := NewCancelAppointment(repo, newAudit(), notify.NewDispatcher(saver, zap.NewNop()))

		cancelled, err := uc.Execute(ctx, customerID, ap.ID, now)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", cancelled.Status)
		require.NotNil(t, cancelled.CancelledAt)

		require.Eventually(t, func() bool { return saver.count() == 1 }, time.Second, 10*time.Millisecond)
		assert.Equal(t, "cancelled", saver.last().Status)
	})

	t.Run("already completed", func(t *testing.T) {
		repo := newFakeRepo()
		ap := repo.seed(models.Appointment{CustomerID: customerID, Status: "completed"})

		uc := NewCancelAppointment(repo, newAudit(), notify.NewDispatcher(&memSaver{}, zap.NewNop()))

		_, err := uc.Execute(ctx, customerID, ap.ID, now)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "terminal_state"))
	})
}

func TestReviewAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the rating", func(t *testing.T) {
		repo := newFakeRepo()
		ap := repo.seed(models.Appointment{CustomerID: customerID, Status: "completed"})

		uc := NewReviewAppointment(repo, newAudit())

		reviewed, err := uc.Execute(ctx, customerID, ap.ID, 5, "spotless work")
		require.NoError(t, err)
		require.NotNil(t, reviewed.Rating)
		assert.Equal(t, 5, *reviewed.Rating)
		assert.Equal(t, "spotless work", reviewed.Review)
	})

	t.Run("not completed yet", func(t *testing.T) {
		repo := newFakeRepo()
		ap := repo.seed(models.Appointment{CustomerID: customerID, Status: "in_progress"})

		uc := NewReviewAppointment(repo, newAudit())

		_, err := uc.Execute(ctx, customerID, ap.ID, 5, "")
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "not_completed"))
	})
}

func TestSoftDeleteAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("hides a cancelled appointment", func(t *testing.T) {
		repo := newFakeRepo()
		ap := repo.seed(models.Appointment{CustomerID: customerID, Status: "cancelled"})

		uc := NewSoftDeleteAppointment(repo, newAudit())

		require.NoError(t, uc.Execute(ctx, customerID, ap.ID))
		assert.True(t, repo.appointments[ap.ID].Deleted)

		_, err := repo.GetForCustomer(ctx, ap.ID, customerID)
		assert.Error(t, err, "hidden from the customer afterwards")
	})

	t.Run("active appointments stay", func(t *testing.T) {
		repo := newFakeRepo()
		ap := repo.seed(models.Appointment{CustomerID: customerID, Status: "confirmed"})

		uc := NewSoftDeleteAppointment(repo, newAudit())

		err := uc.Execute(ctx, customerID, ap.ID)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "not_cancelled"))
	})
}

// ======================================================
// ASSIGNMENT
// ======================================================

func TestAssignMechanic(t *testing.T) {
	ctx := context.Background()
	const adminID uint = 1

	t.Run("assigns", func(t *testing.T) {
		repo := newFakeRepo()
		ap := repo.seed(models.Appointment{
			CustomerID:  customerID,
			ScheduledAt: now.Add(4 * time.Hour),
			Status:      "pending",
		})

		uc := NewAssignMechanic(repo, newAudit())

		assigned, err := uc.Execute(ctx, adminID, ap.ID, mechID)
		require.NoError(t, err)
		require.NotNil(t, assigned.MechanicID)
		assert.Equal(t, mechID, *assigned.MechanicID)
	})

	t.Run("mechanic is unavailable", func(t *testing.T) {
		repo := newFakeRepo()
		ap := repo.seed(models.Appointment{
			CustomerID:  customerID,
			ScheduledAt: now.Add(4 * time.Hour),
			Status:      "pending",
		})
		repo.unavailable = []models.Schedule{{
			MechanicID: mechID,
			StartTime:  now,
			EndTime:    now.Add(24 * time.Hour),
			Kind:       "unavailable",
			Status:     "approved",
		}}

		uc := NewAssignMechanic(repo, newAudit())

		_, err := uc.Execute(ctx, adminID, ap.ID, mechID)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "mechanic_unavailable"))
	})

	t.Run("terminal appointment", func(t *testing.T) {
		repo := newFakeRepo()
		ap := repo.seed(models.Appointment{CustomerID: customerID, Status: "cancelled"})

		uc := NewAssignMechanic(repo, newAudit())

		_, err := uc.Execute(ctx, adminID, ap.ID, mechID)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "terminal_state"))
	})
}
