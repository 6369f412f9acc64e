package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkingStatusIsDerived(t *testing.T) {
	u := User{Role: RoleEmployee}

	assert.Equal(t, WorkingStatusFree, u.WorkingStatus())

	u.IsWorking = true
	assert.Equal(t, WorkingStatusWorking, u.WorkingStatus())

	u.IsWorking = false
	assert.Equal(t, WorkingStatusFree, u.WorkingStatus())
}

// Toggling an even number of times returns to the starting status.
func TestWorkingStatusToggleInvolution(t *testing.T) {
	u := User{Role: RoleEmployee}
	start := u.WorkingStatus()

	u.IsWorking = !u.IsWorking
	assert.NotEqual(t, start, u.WorkingStatus())

	u.IsWorking = !u.IsWorking
	assert.Equal(t, start, u.WorkingStatus())
}

func TestRoleHelpers(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.True(t, (&User{Role: RoleEmployee}).IsEmployee())
	assert.True(t, (&User{Role: RoleCustomer}).IsCustomer())
	assert.True(t, (&User{Role: RoleCustomerCare}).IsCustomerCare())

	assert.True(t, (&User{Role: RoleEmployee}).IsStaff())
	assert.True(t, (&User{Role: RoleCustomerCare}).IsStaff())
	assert.True(t, (&User{Role: RoleAdmin}).IsStaff())
	assert.False(t, (&User{Role: RoleCustomer}).IsStaff())
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []UserRole{RoleCustomer, RoleEmployee, RoleAdmin, RoleCustomerCare} {
		assert.True(t, (&User{Role: role}).IsValidRole(), "role %s", role)
	}
	assert.False(t, (&User{Role: "manager"}).IsValidRole())
}
