package planner

import (
	"context"
	"log"
	"time"

	"github.com/parthselarka/focusmate/internal/notify"
	"github.com/parthselarka/focusmate/internal/repository"
)

// ReminderSource yields tasks starting inside a window, joined to owner
// contact info.
type ReminderSource interface {
	StartingBetween(ctx context.Context, from, to time.Time) ([]repository.ReminderRow, error)
}

// ReminderService runs the periodic scan for tasks starting soon and
// dispatches one notification per matching task per tick.
//
// There is no persisted already-notified marker: a task inside the
// lookahead window is re-selected on every tick until its start time
// passes, so delivery is at-least-once by design.
type ReminderService struct {
	tasks    ReminderSource
	resolver *WindowResolver
	gateway  notify.Gateway

	now func() time.Time
}

func NewReminderService(tasks ReminderSource, resolver *WindowResolver, gateway notify.Gateway) *ReminderService {
	return &ReminderService{
		tasks:    tasks,
		resolver: resolver,
		gateway:  gateway,
		now:      time.Now,
	}
}

// Tick executes one scan cycle. A query failure skips only this tick;
// a dispatch failure skips only that task. Nothing here reaches users.
func (s *ReminderService) Tick(ctx context.Context) {
	window := s.resolver.Window(s.now())

	rows, err := s.tasks.StartingBetween(ctx, window.From, window.To)
	if err != nil {
		log.Printf("reminder scan: %v", err)
		return
	}

	for _, row := range rows {
		contact, ok := s.gateway.Contact(notify.Recipient{
			Email:          row.Email,
			TelegramChatID: row.TelegramChatID,
		})
		if !ok {
			// No deliverable contact for this owner; not an error.
			continue
		}

		label := "soon"
		if !row.Start.After(window.From) {
			label = "now"
		}

		if err := s.gateway.SendReminder(ctx, contact, row.Title, label); err != nil {
			log.Printf("reminder: %v", &DispatchError{Contact: contact, Err: err})
			continue
		}
	}
}
