package google

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"

	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
)

// Ensure the relays implement their ports.
var (
	_ driven.CalendarService = (*CalendarRelay)(nil)
	_ driven.TasksService    = (*TasksRelay)(nil)
)

// defaultMaxResults bounds list calls when the caller passes zero.
const defaultMaxResults = 10

// CalendarRelay lists upcoming events from the user's primary calendar.
type CalendarRelay struct {
	auth    *Authenticator
	limiter *RateLimiter
}

// NewCalendarRelay creates a calendar relay backed by the authenticator.
func NewCalendarRelay(auth *Authenticator) *CalendarRelay {
	return &CalendarRelay{
		auth:    auth,
		limiter: NewRateLimiter(ServiceCalendar),
	}
}

// UpcomingEvents lists up to maxResults events starting after the given
// time from the primary calendar, in chronological order.
func (r *CalendarRelay) UpcomingEvents(
	ctx context.Context, after time.Time, maxResults int,
) ([]driven.CalendarEvent, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	ts, err := r.auth.TokenSource(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("google: create calendar service: %w", err)
	}

	// Recurring events are expanded so ordering by start time works
	result, err := svc.Events.List("primary").
		TimeMin(after.Format(time.RFC3339)).
		MaxResults(int64(maxResults)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("google: list events: %w", WrapError(err))
	}

	events := make([]driven.CalendarEvent, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, driven.CalendarEvent{
			ID:       item.Id,
			Summary:  item.Summary,
			Location: item.Location,
			Start:    eventTime(item.Start),
			End:      eventTime(item.End),
			HTMLLink: item.HtmlLink,
		})
	}
	return events, nil
}

// eventTime prefers the precise DateTime and falls back to the
// all-day Date form.
func eventTime(t *calendar.EventDateTime) string {
	if t == nil {
		return ""
	}
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

// TasksRelay lists open tasks from the user's default task list.
type TasksRelay struct {
	auth    *Authenticator
	limiter *RateLimiter
}

// NewTasksRelay creates a tasks relay backed by the authenticator.
func NewTasksRelay(auth *Authenticator) *TasksRelay {
	return &TasksRelay{
		auth:    auth,
		limiter: NewRateLimiter(ServiceTasks),
	}
}

// ListTasks lists up to maxResults tasks from the default task list.
func (r *TasksRelay) ListTasks(ctx context.Context, maxResults int) ([]driven.TaskItem, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	ts, err := r.auth.TokenSource(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	svc, err := tasks.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("google: create tasks service: %w", err)
	}

	result, err := svc.Tasks.List("@default").
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("google: list tasks: %w", WrapError(err))
	}

	items := make([]driven.TaskItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, driven.TaskItem{
			ID:     item.Id,
			Title:  item.Title,
			Notes:  item.Notes,
			Due:    item.Due,
			Status: item.Status,
		})
	}
	return items, nil
}
