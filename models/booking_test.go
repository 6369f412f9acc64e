package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBookingStatus(t *testing.T) {
	for _, status := range AllBookingStatuses {
		assert.True(t, IsValidBookingStatus(status), "status %q", status)
	}

	invalid := []BookingStatus{
		"",
		"pending",   // lowercase is not part of the enumeration
		"Completed ",
		"Done",
		"Pending-Weather",
	}
	for _, status := range invalid {
		assert.False(t, IsValidBookingStatus(status), "status %q", status)
	}
}

func TestStatusEnumerationIsExhaustive(t *testing.T) {
	assert.Len(t, AllBookingStatuses, 8)
	assert.Contains(t, AllBookingStatuses, BookingStatus("Completed - Awaiting Admin Confirmation"))
	assert.Contains(t, AllBookingStatuses, BookingStatus("Pending - Customer Unavailable"))
}
