package record

import (
	"fmt"
	"sync"
	"time"
)

// CreatedAtLayout is the machine-sortable creation timestamp (UTC, millisecond precision).
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

var ruMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// Stamp carries the identity and timestamps assigned to a new record.
type Stamp struct {
	ID        int64
	Date      string
	CreatedAt string
}

// Clock assigns ids and timestamps. Ids are the submission instant in Unix
// milliseconds; when two submissions land on the same millisecond the later
// one gets the next free value, so a single process never repeats an id.
type Clock struct {
	mu   sync.Mutex
	now  func() time.Time
	loc  *time.Location
	last int64
}

// NewClock returns a Clock reading the wall clock and formatting display
// dates in loc (time.Local when nil).
func NewClock(loc *time.Location) *Clock {
	return NewClockFunc(time.Now, loc)
}

// NewClockFunc is NewClock with an injectable time source.
func NewClockFunc(now func() time.Time, loc *time.Location) *Clock {
	if loc == nil {
		loc = time.Local
	}
	return &Clock{now: now, loc: loc}
}

// Next returns a fresh stamp.
func (c *Clock) Next() Stamp {
	c.mu.Lock()
	t := c.now()
	id := t.UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	c.mu.Unlock()

	return Stamp{
		ID:        id,
		Date:      DisplayDate(t.In(c.loc)),
		CreatedAt: t.UTC().Format(CreatedAtLayout),
	}
}

// DisplayDate renders t the way the front end shows creation dates,
// e.g. "14 октября 2026 г. в 15:04".
func DisplayDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d г. в %02d:%02d", t.Day(), ruMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
