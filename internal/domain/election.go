package domain

import "time"

const DateLayout = "2006-01-02"

type ElectionStatus string

const (
	ElectionUpcoming  ElectionStatus = "upcoming"
	ElectionActive    ElectionStatus = "active"
	ElectionCompleted ElectionStatus = "completed"
)

type Election struct {
	ID        int64          `json:"election_id"`
	Title     string         `json:"title"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Status    ElectionStatus `json:"status"`
}

// DeriveStatus places today relative to the inclusive [start, end] range.
// Dates that fail to parse yield ElectionUpcoming.
func DeriveStatus(start, end string, today time.Time) ElectionStatus {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return ElectionUpcoming
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return ElectionUpcoming
	}

	d := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case d.After(e):
		return ElectionCompleted
	case d.Before(s):
		return ElectionUpcoming
	default:
		return ElectionActive
	}
}

func (e Election) CurrentStatus(today time.Time) ElectionStatus {
	return DeriveStatus(e.StartDate, e.EndDate, today)
}
