package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	cases := map[string]struct {
		in   string
		want int
		ok   bool
	}{
		"meia-noite":    {"00:00", 0, true},
		"fim do dia":    {"23:59", 23*60 + 59, true},
		"hora inválida": {"24:00", 0, false},
		"sem minutos":   {"10", 0, false},
		"texto":         {"ab:cd", 0, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := ParseClock(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestConflicts(t *testing.T) {
	ev := func(date, start, end string) Event {
		return Event{StartDate: date, StartTime: start, EndTime: end}
	}

	assert.True(t, Conflicts(ev("2024-01-15", "09:00", "10:00"), ev("2024-01-15", "09:59", "11:00")))
	assert.True(t, Conflicts(ev("2024-01-15", "08:00", "12:00"), ev("2024-01-15", "09:00", "10:00")))
	assert.False(t, Conflicts(ev("2024-01-15", "09:00", "10:00"), ev("2024-01-15", "10:00", "11:00")))
	assert.False(t, Conflicts(ev("2024-01-15", "09:00", "10:00"), ev("2024-01-16", "09:00", "10:00")))
	assert.False(t, Conflicts(ev("2024-01-15", "", ""), ev("2024-01-15", "09:00", "10:00")))
}

func TestFindConflict_SkipsSelf(t *testing.T) {
	existing := DefaultDataset().Events
	self := existing[0]

	_, found := FindConflict(self, existing)
	assert.False(t, found)

	self.ID = "outro"
	other, found := FindConflict(self, existing)
	assert.True(t, found)
	assert.Equal(t, "1", other.ID)
}
