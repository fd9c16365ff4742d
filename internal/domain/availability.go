package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	// Slot times must sit on 10-minute boundaries.
	SlotStepMinutes = 10
	// Minimum length of a slot and of a session booked against one.
	MinSessionMinutes = 30
)

// MentorAvailability is a mentor-published bookable time window.
// StartTime and EndTime are wall-clock strings in "HH:mm" form on the
// slot's date; a slot never crosses midnight.
type MentorAvailability struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MentorID  uuid.UUID      `json:"mentorId" gorm:"type:uuid;not null;index"`
	Date      datatypes.Date `json:"date" gorm:"not null"`
	StartTime string         `json:"startTime" gorm:"not null"`
	EndTime   string         `json:"endTime" gorm:"not null"`
	IsBooked  bool           `json:"isBooked" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	Mentor *User `json:"mentor,omitempty" gorm:"foreignKey:MentorID"`
}

// StartAt combines the slot's date and start time into a UTC timestamp.
func (a *MentorAvailability) StartAt() (time.Time, error) {
	return combine(a.Date, a.StartTime)
}

// EndAt combines the slot's date and end time into a UTC timestamp.
func (a *MentorAvailability) EndAt() (time.Time, error) {
	return combine(a.Date, a.EndTime)
}

func combine(date datatypes.Date, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, ErrInvalidSlotTime
	}
	d := time.Time(date)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// IsValidSlotTime reports whether s is a well-formed "HH:mm" clock value
// on a 10-minute boundary.
func IsValidSlotTime(s string) bool {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return false
	}
	return t.Minute()%SlotStepMinutes == 0
}

// SlotDuration returns the whole minutes between two "HH:mm" values.
// The result is negative when end precedes start; callers are expected
// to reject that along with anything under MinSessionMinutes.
func SlotDuration(start, end string) (int, error) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0, ErrInvalidSlotTime
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0, ErrInvalidSlotTime
	}
	return int(e.Sub(s).Minutes()), nil
}
