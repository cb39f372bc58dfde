package store

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathology-case-server/internal/models"
)

// Notifier is the side-effect boundary other stores use to surface a
// transient message to the acting user.
type Notifier interface {
	Show(message string, typ models.NotificationType)
}

// NotificationStore holds the latest transient notification and fans it out
// to subscribers.
type NotificationStore struct {
	current *Signal[*models.Notification]
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{current: NewSignal[*models.Notification](nil)}
}

// Show replaces the visible notification.
func (s *NotificationStore) Show(message string, typ models.NotificationType) {
	s.current.Set(&models.Notification{Message: message, Type: typ})
}

// Hide clears the visible notification.
func (s *NotificationStore) Hide() {
	s.current.Set(nil)
}

// Current returns the visible notification, or nil.
func (s *NotificationStore) Current() *models.Notification {
	cur := s.current.Get()
	if cur == nil {
		return nil
	}
	c := *cur
	return &c
}

// Subscribe registers fn to run on every notification change.
func (s *NotificationStore) Subscribe(fn func(*models.Notification)) func() {
	return s.current.Subscribe(fn)
}

// ErrorLogStore captures failures with generated reference ids. Failures are
// contained to the triggering action; the reference id is the only thing
// surfaced to the user.
type ErrorLogStore struct {
	log    *zap.Logger
	errors *Signal[[]models.LoggedError]
}

func NewErrorLogStore(log *zap.Logger) *ErrorLogStore {
	return &ErrorLogStore{
		log:    log,
		errors: NewSignal([]models.LoggedError{}),
	}
}

// LogError records an error under a generated reference id and returns the
// id for user-facing messages.
func (s *ErrorLogStore) LogError(err error, context string) string {
	refID := fmt.Sprintf("err-%s", uuid.New().String()[:8])
	entry := models.LoggedError{
		ID:        refID,
		Timestamp: time.Now(),
		Message:   err.Error(),
		Context:   context,
	}

	s.log.Error("operation failed",
		zap.String("ref", refID),
		zap.String("context", context),
		zap.Error(err))

	s.errors.Update(func(errs []models.LoggedError) []models.LoggedError {
		return append([]models.LoggedError{entry}, errs...)
	})
	return refID
}

// Errors returns a snapshot of the captured errors, newest first.
func (s *ErrorLogStore) Errors() []models.LoggedError {
	return slices.Clone(s.errors.Get())
}
