// Package timegrid defines the half-hour slot grid a timetable is drawn on.
//
// The grid covers two terms, Monday through Saturday, with slots starting
// every 30 minutes from 08:00 up to and including 22:00.
package timegrid

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// SlotMinutes is the length of one slot.
	SlotMinutes = 30
	// FirstSlotMinute is the start of the first slot of a day (08:00).
	FirstSlotMinute = 8 * 60
	// LastSlotMinute is the start of the last slot of a day (22:00).
	LastSlotMinute = 22 * 60
	// SlotsPerDay is the number of slot starts between 08:00 and 22:00 inclusive.
	SlotsPerDay = (LastSlotMinute-FirstSlotMinute)/SlotMinutes + 1
	// DaysPerWeek is the number of weekdays on the grid (Monday..Saturday).
	DaysPerWeek = 6
	// NumTerms is the number of terms on the grid.
	NumTerms = 2
	// TotalSlots is the number of addressable slots.
	TotalSlots = NumTerms * DaysPerWeek * SlotsPerDay
)

// ErrUnknownWeekday is returned for weekday codes outside Monday..Saturday.
var ErrUnknownWeekday = errors.New("unknown weekday")

// Term is an academic term on the grid.
type Term int

const (
	Term1 Term = 1
	Term2 Term = 2
)

// Valid reports whether t is a grid term.
func (t Term) Valid() bool {
	return t == Term1 || t == Term2
}

// Weekday is a grid day, Monday (0) through Saturday (5).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayCodes = [DaysPerWeek]string{"mo", "tu", "we", "th", "fr", "sa"}

var weekdayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Weekdays returns the grid days in order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// ParseWeekday accepts a two-letter code ("mo") or an English day name.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, code := range weekdayCodes {
		if s == code || s == strings.ToLower(weekdayNames[i]) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
}

// Valid reports whether d is a grid day.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Saturday
}

// Code returns the two-letter code of the day.
func (d Weekday) Code() string {
	if !d.Valid() {
		return ""
	}
	return weekdayCodes[d]
}

// String returns the English name of the day.
func (d Weekday) String() string {
	if !d.Valid() {
		return ""
	}
	return weekdayNames[d]
}

// SlotKey addresses one half-hour cell of the grid.
// Keys are comparable and may be used as map keys.
type SlotKey struct {
	Term   Term
	Day    Weekday
	Minute int // minutes since midnight of the slot start
}

// KeyFor builds the key for a term, day and start time.
func KeyFor(term Term, day Weekday, hour, minute int) SlotKey {
	return SlotKey{Term: term, Day: day, Minute: hour*60 + minute}
}

// Hour returns the hour of the slot start.
func (k SlotKey) Hour() int {
	return k.Minute / 60
}

// Clock returns the slot start as a Clock.
func (k SlotKey) Clock() Clock {
	return Clock{Hour: k.Minute / 60, Minute: k.Minute % 60}
}

// Compare orders keys by term, then day, then time.
func (k SlotKey) Compare(other SlotKey) int {
	if c := cmp.Compare(k.Term, other.Term); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Day, other.Day); c != 0 {
		return c
	}
	return cmp.Compare(k.Minute, other.Minute)
}

// Less reports whether k sorts before other.
func (k SlotKey) Less(other SlotKey) bool {
	return k.Compare(other) < 0
}

// String renders the key as "term1_mo_900".
func (k SlotKey) String() string {
	return "term" + strconv.Itoa(int(k.Term)) + "_" + k.Day.Code() + "_" +
		strconv.Itoa(k.Hour()) + strconv.Itoa(k.Minute%60)
}

// InGrid reports whether the key is one of the enumerated grid slots.
func InGrid(k SlotKey) bool {
	if !k.Term.Valid() || !k.Day.Valid() {
		return false
	}
	if k.Minute < FirstSlotMinute || k.Minute > LastSlotMinute {
		return false
	}
	return (k.Minute-FirstSlotMinute)%SlotMinutes == 0
}

// Index returns the flat position of k in Enumerate order, or -1 if k is off the grid.
func Index(k SlotKey) int {
	if !InGrid(k) {
		return -1
	}
	slot := (k.Minute - FirstSlotMinute) / SlotMinutes
	return (int(k.Term-1)*DaysPerWeek+int(k.Day))*SlotsPerDay + slot
}

// Enumerate returns every grid slot ascending by term, day and time.
func Enumerate() []SlotKey {
	keys := make([]SlotKey, 0, TotalSlots)
	for _, term := range []Term{Term1, Term2} {
		for _, day := range Weekdays() {
			for m := FirstSlotMinute; m <= LastSlotMinute; m += SlotMinutes {
				keys = append(keys, SlotKey{Term: term, Day: day, Minute: m})
			}
		}
	}
	return keys
}
