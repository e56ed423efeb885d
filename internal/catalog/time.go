package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/javiermolinar/ttg/internal/timegrid"
	"github.com/javiermolinar/ttg/internal/unit"
)

// ErrBadTime is returned for a meeting time that cannot be decoded.
var ErrBadTime = errors.New("invalid meeting time")

// Time is one weekly meeting of a section.
//
// In JSON it is either an object
//
//	{"term": 1, "day": "mo", "start": "09:30", "end": "10:20", "location": "ITB 137"}
//
// or the legacy tuple [term, day, hour, minute, endHour, endMinute, location].
// Tuples with fewer than six entries describe unscheduled meetings.
type Time struct {
	Term        unit.TermSpec
	Day         timegrid.Weekday
	Start       timegrid.Clock
	End         timegrid.Clock
	Location    string
	Unscheduled bool
}

// Meeting converts the time to a unit meeting.
func (t Time) Meeting() unit.Meeting {
	return unit.Meeting{
		Term:     t.Term,
		Day:      t.Day,
		Start:    t.Start,
		End:      t.End,
		Location: t.Location,
	}
}

type timeObject struct {
	Term     unit.TermSpec `json:"term"`
	Day      string        `json:"day"`
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Location string        `json:"location,omitempty"`
}

// MarshalJSON writes the object form.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(timeObject{
		Term:     t.Term,
		Day:      t.Day.Code(),
		Start:    t.Start.String(),
		End:      t.End.String(),
		Location: t.Location,
	})
}

// UnmarshalJSON accepts the object or the legacy tuple form.
func (t *Time) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return t.decodeTuple(data)
	}

	var obj timeObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrBadTime, err)
	}
	day, err := timegrid.ParseWeekday(obj.Day)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadTime, err)
	}
	start, err := timegrid.ParseClock(obj.Start)
	if err != nil {
		return fmt.Errorf("%w: start: %v", ErrBadTime, err)
	}
	end, err := timegrid.ParseClock(obj.End)
	if err != nil {
		return fmt.Errorf("%w: end: %v", ErrBadTime, err)
	}

	*t = Time{Term: obj.Term, Day: day, Start: start, End: end, Location: obj.Location}
	return nil
}

func (t *Time) decodeTuple(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrBadTime, err)
	}

	if len(raw) < 6 {
		*t = Time{Unscheduled: true}
		// A lone entry is the room of an unscheduled meeting.
		if len(raw) == 1 {
			_ = json.Unmarshal(raw[0], &t.Location)
		}
		return nil
	}

	var (
		term             int
		day              string
		h, m, endH, endM int
		location         string
	)
	fields := []any{&term, &day, &h, &m, &endH, &endM}
	for i, dst := range fields {
		if err := json.Unmarshal(raw[i], dst); err != nil {
			return fmt.Errorf("%w: field %d: %v", ErrBadTime, i, err)
		}
	}
	if len(raw) > 6 {
		if err := json.Unmarshal(raw[6], &location); err != nil {
			return fmt.Errorf("%w: location: %v", ErrBadTime, err)
		}
	}

	wd, err := timegrid.ParseWeekday(day)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadTime, err)
	}
	*t = Time{
		Term:     unit.TermSpec(term),
		Day:      wd,
		Start:    timegrid.Clock{Hour: h, Minute: m},
		End:      timegrid.Clock{Hour: endH, Minute: endM},
		Location: location,
	}
	return nil
}
