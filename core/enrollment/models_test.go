package enrollment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountCompleted(t *testing.T) {
	enrs := []Enrollment{
		{UserID: "u1", InstitutionID: "i1", Status: StatusCompleted},
		{UserID: "u1", InstitutionID: "i1", Status: StatusActive},
		{UserID: "u1", InstitutionID: "i2", Status: StatusCompleted},
		{UserID: "u1", InstitutionID: "i1", Status: StatusCompleted},
	}

	tests := []struct {
		name          string
		institutionID string
		want          int
	}{
		{name: "institution with completions", institutionID: "i1", want: 2},
		{name: "other institution", institutionID: "i2", want: 1},
		{name: "unknown institution", institutionID: "i3", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountCompleted(enrs, tt.institutionID); got != tt.want {
				t.Errorf("CountCompleted() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestDistinctUsers(t *testing.T) {
	users := DistinctUsers([]Enrollment{{UserID: "u1"}, {UserID: "u2"}, {UserID: "u1"}})
	assert.Len(t, users, 2)
	assert.Contains(t, users, "u1")
	assert.Contains(t, users, "u2")
	assert.Empty(t, DistinctUsers(nil))
}
