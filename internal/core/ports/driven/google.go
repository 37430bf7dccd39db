package driven

import (
	"context"
	"time"
)

// CalendarService surfaces upcoming events from an external calendar.
// This is a pass-through collaborator: Jarvis relays what the remote
// API returns and applies no retry or consistency policy of its own.
type CalendarService interface {
	// UpcomingEvents lists up to maxResults events starting after
	// the given time, in chronological order.
	UpcomingEvents(ctx context.Context, after time.Time, maxResults int) ([]CalendarEvent, error)
}

// CalendarEvent is the relayed shape of a remote calendar event.
type CalendarEvent struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	Location string `json:"location,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end"`
	HTMLLink string `json:"html_link,omitempty"`
}

// TasksService surfaces the user's task list from an external service.
type TasksService interface {
	// ListTasks lists up to maxResults open tasks from the default
	// task list.
	ListTasks(ctx context.Context, maxResults int) ([]TaskItem, error)
}

// TaskItem is the relayed shape of a remote task.
type TaskItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Notes  string `json:"notes,omitempty"`
	Due    string `json:"due,omitempty"`
	Status string `json:"status"`
}
