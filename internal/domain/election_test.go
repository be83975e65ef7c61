package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	today := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(DateLayout)
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  ElectionStatus
	}{
		{name: "running", start: day(-1), end: day(1), want: ElectionActive},
		{name: "starts in five days", start: day(5), end: day(10), want: ElectionUpcoming},
		{name: "ended yesterday", start: day(-10), end: day(-1), want: ElectionCompleted},
		{name: "starts today", start: day(0), end: day(3), want: ElectionActive},
		{name: "ends today", start: day(-3), end: day(0), want: ElectionActive},
		{name: "single day", start: day(0), end: day(0), want: ElectionActive},
		{name: "bad start", start: "10/03/2026", end: day(1), want: ElectionUpcoming},
		{name: "bad end", start: day(-1), end: "soon", want: ElectionUpcoming},
		{name: "empty", start: "", end: "", want: ElectionUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.start, tt.end, today))
		})
	}
}

func TestElection_CurrentStatus(t *testing.T) {
	e := Election{StartDate: "2026-01-01", EndDate: "2026-01-31", Status: ElectionUpcoming}

	assert.Equal(t, ElectionActive, e.CurrentStatus(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, ElectionCompleted, e.CurrentStatus(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBallot_Offers(t *testing.T) {
	b := Ballot{Candidates: []Candidate{{ID: 101}, {ID: 103}}}

	assert.True(t, b.Offers(101))
	assert.False(t, b.Offers(102))
	assert.False(t, Ballot{}.Offers(101))
}
