package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for record keys.
const DateLayout = "2006-01-02"

// Item is a tracked habit: a unique name plus the punches recorded for each
// calendar date. A date key is only present while its punch list is non-empty.
type Item struct {
	Name    string                 `json:"name"`
	Records map[string][]time.Time `json:"records"`
}

// NewItem creates an item with no records. The name is trimmed and must not
// be blank.
func NewItem(name string) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Item{Name: name, Records: map[string][]time.Time{}}, nil
}

// DateKey formats t as a record key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidateDate checks that s is a YYYY-MM-DD calendar date.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w %q: use YYYY-MM-DD", ErrInvalidDate, s)
	}
	return nil
}

// Punch appends at to the punch list of date.
func (i *Item) Punch(date string, at time.Time) {
	if i.Records == nil {
		i.Records = map[string][]time.Time{}
	}
	i.Records[date] = append(i.Records[date], at)
}

// CancelPunch removes the most recent punch of date, dropping the date key
// when its list becomes empty. Reports whether a punch was removed.
func (i *Item) CancelPunch(date string) bool {
	punches := i.Records[date]
	if len(punches) == 0 {
		return false
	}
	punches = punches[:len(punches)-1]
	if len(punches) == 0 {
		delete(i.Records, date)
	} else {
		i.Records[date] = punches
	}
	return true
}

// PunchesOn returns a copy of the punches recorded for date.
func (i *Item) PunchesOn(date string) []time.Time {
	punches := i.Records[date]
	if len(punches) == 0 {
		return nil
	}
	out := make([]time.Time, len(punches))
	copy(out, punches)
	return out
}

// Dates returns the recorded dates in ascending order.
func (i *Item) Dates() []string {
	dates := make([]string, 0, len(i.Records))
	for d := range i.Records {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// TotalPunches counts punches across all dates.
func (i *Item) TotalPunches() int {
	n := 0
	for _, punches := range i.Records {
		n += len(punches)
	}
	return n
}

// LastPunch returns the latest punch timestamp across all dates.
func (i *Item) LastPunch() (time.Time, bool) {
	var last time.Time
	found := false
	for _, punches := range i.Records {
		for _, p := range punches {
			if !found || p.After(last) {
				last = p
				found = true
			}
		}
	}
	return last, found
}

// Normalize restores the invariants on data read from storage: the name is
// trimmed, the records map is non-nil and empty date lists are dropped.
func (i *Item) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	if i.Records == nil {
		i.Records = map[string][]time.Time{}
	}
	for d, punches := range i.Records {
		if len(punches) == 0 {
			delete(i.Records, d)
		}
	}
}

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	c := &Item{Name: i.Name, Records: make(map[string][]time.Time, len(i.Records))}
	for d, punches := range i.Records {
		c.Records[d] = append([]time.Time(nil), punches...)
	}
	return c
}
