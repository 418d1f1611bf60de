package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionUnitStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"checked_in to assigned", UnitStatusCheckedIn, UnitStatusAssigned, true},
		{"assigned to en_route", UnitStatusAssigned, UnitStatusEnRoute, true},
		{"en_route to on_scene", UnitStatusEnRoute, UnitStatusOnScene, true},
		{"on_scene to searching", UnitStatusOnScene, UnitStatusSearching, true},
		{"searching to returned", UnitStatusSearching, UnitStatusReturned, true},
		{"returned back to assigned", UnitStatusReturned, UnitStatusAssigned, true},
		{"checked_in cannot jump to searching", UnitStatusCheckedIn, UnitStatusSearching, false},
		{"searching cannot go back to en_route", UnitStatusSearching, UnitStatusEnRoute, false},
		{"any status can go out_of_service", UnitStatusSearching, UnitStatusOutOfService, true},
		{"out_of_service returns via checked_in", UnitStatusOutOfService, UnitStatusCheckedIn, true},
		{"out_of_service cannot resume searching", UnitStatusOutOfService, UnitStatusSearching, false},
		{"unknown status has no transitions", "bogus", UnitStatusCheckedIn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionUnitStatus(tt.from, tt.to))
		})
	}
}

func TestIsValidUnitType(t *testing.T) {
	assert.True(t, IsValidUnitType(UnitTypeGround))
	assert.True(t, IsValidUnitType(UnitTypeK9))
	assert.False(t, IsValidUnitType("submarine"))
}
