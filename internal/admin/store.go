package admin

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

var ErrInvalidTime = errors.New("invalid time, want HH:MM")

type DayHours struct {
	Day   int    `json:"day"` // 0 = Sunday
	Open  string `json:"open"`
	Close string `json:"close"`
}

type Holiday struct {
	DateISO string `json:"dateISO"`
	Reason  string `json:"reason"`
}

// Store holds the admin console state: weekly hours, holiday closures,
// delivery ZIP zones, and settings toggles. It is deliberately in-memory
// mock state guarded by a mutex; nothing else in the system reads it.
type Store struct {
	mu       sync.Mutex
	hours    map[int]DayHours
	holidays map[string]string
	zones    map[string]struct{}
	settings map[string]bool
}

func NewStore() *Store {
	s := &Store{
		hours:    make(map[int]DayHours),
		holidays: make(map[string]string),
		zones:    make(map[string]struct{}),
		settings: map[string]bool{
			"accept_pickup":   true,
			"accept_delivery": true,
			"auto_confirm":    false,
			"show_popular":    true,
		},
	}
	for day := 0; day < 7; day++ {
		s.hours[day] = DayHours{Day: day, Open: "11:00", Close: "20:00"}
	}
	return s
}

func (s *Store) Hours() []DayHours {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]DayHours, 0, len(s.hours))
	for _, h := range s.hours {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

func (s *Store) SetHours(day int, open, close string) error {
	if day < 0 || day > 6 {
		return fmt.Errorf("day out of range: %d", day)
	}
	if !validClock(open) || !validClock(close) {
		return ErrInvalidTime
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hours[day] = DayHours{Day: day, Open: open, Close: close}
	return nil
}

func validClock(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil
}

func (s *Store) Holidays() []Holiday {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Holiday, 0, len(s.holidays))
	for date, reason := range s.holidays {
		out = append(out, Holiday{DateISO: date, Reason: reason})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateISO < out[j].DateISO })
	return out
}

func (s *Store) AddHoliday(dateISO, reason string) error {
	if _, err := time.Parse("2006-01-02", dateISO); err != nil {
		return fmt.Errorf("invalid date %q: %w", dateISO, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays[dateISO] = reason
	return nil
}

func (s *Store) RemoveHoliday(dateISO string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.holidays, dateISO)
}

func (s *Store) Zones() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.zones))
	for zip := range s.zones {
		out = append(out, zip)
	}
	sort.Strings(out)
	return out
}

// AddZone is idempotent; adding an existing ZIP is a no-op.
func (s *Store) AddZone(zip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones[zip] = struct{}{}
}

func (s *Store) RemoveZone(zip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.zones, zip)
}

func (s *Store) Settings() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]bool, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out
}

func (s *Store) SetSetting(key string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.settings[key]; !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	s.settings[key] = on
	return nil
}
