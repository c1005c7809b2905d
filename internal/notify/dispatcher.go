package notify

import (
	"go.uber.org/zap"

	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

type Event struct {
	UserID        uint
	AppointmentID uint
	Status        string
}

// Dispatcher delivers notifications off the request path. At-most-once:
// a full queue or failed write is logged and forgotten, never surfaced to
// the caller.
// Saver persists a notification. *Store is the gorm-backed implementation.
type Saver interface {
	Save(n *models.Notification) error
}

type Dispatcher struct {
	store Saver
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(store Saver, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		store: store,
		log:   log,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		apID := ev.AppointmentID
		n := models.Notification{
			UserID:        ev.UserID,
			AppointmentID: &apID,
			Status:        ev.Status,
			Message:       MessageFor(ev.Status),
		}

		if err := d.store.Save(&n); err != nil {
			d.log.Warn("notification write failed",
				zap.Uint("user_id", ev.UserID),
				zap.String("status", ev.Status),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.Uint("user_id", ev.UserID),
			zap.String("status", ev.Status),
		)
	}
}
