package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appliance-booking-server/models"
)

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:         1,
		ServiceID:  10,
		CustomerID: 20,
		Status:     models.BookingStatusPending,
		Payment:    models.Payment{Status: models.PaymentStatusUnpaid},
	}
}

func amount(v float64) *float64 {
	return &v
}

func TestApplyRejectsUnknownStatus(t *testing.T) {
	b := pendingBooking()
	before := *b

	err := Apply(b, models.RoleAdmin, StatusChange{Status: "Paused"})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "allowed statuses")
	assert.Equal(t, before, *b, "booking must be unchanged on rejection")
}

func TestApplyRejectsStatusOutsideRoleSubset(t *testing.T) {
	b := pendingBooking()
	before := *b

	// Customers can only cancel.
	err := Apply(b, models.RoleCustomer, StatusChange{Status: models.BookingStatusCompleted})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, before, *b)
}

func TestEmployeeCompletedBecomesAwaitingConfirmation(t *testing.T) {
	for _, actor := range []models.UserRole{models.RoleEmployee, models.RoleCustomerCare} {
		b := pendingBooking()
		b.Status = models.BookingStatusInProgress

		err := Apply(b, actor, StatusChange{Status: models.BookingStatusCompleted})

		require.NoError(t, err, "actor %s", actor)
		assert.Equal(t, models.BookingStatusAwaitingAdminReview, b.Status)
		assert.False(t, b.AdminConfirmed)
		assert.Zero(t, b.FinalAmount)
	}
}

func TestAdminCompletedRequiresFinalAmount(t *testing.T) {
	b := pendingBooking()
	b.Status = models.BookingStatusAwaitingAdminReview
	before := *b

	err := Apply(b, models.RoleAdmin, StatusChange{Status: models.BookingStatusCompleted})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, before, *b, "no field may be mutated on a failed confirmation")
}

func TestAdminConfirmationSettlesPayment(t *testing.T) {
	b := pendingBooking()
	b.Status = models.BookingStatusAwaitingAdminReview

	err := Apply(b, models.RoleAdmin, StatusChange{
		Status:      models.BookingStatusCompleted,
		FinalAmount: amount(550),
	})

	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, b.Status)
	assert.True(t, b.AdminConfirmed)
	assert.Equal(t, 550.0, b.FinalAmount)
	assert.Equal(t, 550.0, b.Payment.Amount)
	assert.Equal(t, models.PaymentStatusPending, b.Payment.Status)
}

func TestAdminConfirmationRoundsAmount(t *testing.T) {
	b := pendingBooking()

	err := Apply(b, models.RoleAdmin, StatusChange{
		Status:      models.BookingStatusCompleted,
		FinalAmount: amount(199.999),
	})

	require.NoError(t, err)
	assert.Equal(t, 200.0, b.FinalAmount)
	assert.Equal(t, 200.0, b.Payment.Amount)
}

func TestAdminOtherStatusResetsConfirmation(t *testing.T) {
	b := pendingBooking()
	require.NoError(t, Apply(b, models.RoleAdmin, StatusChange{
		Status:      models.BookingStatusCompleted,
		FinalAmount: amount(300),
	}))

	err := Apply(b, models.RoleAdmin, StatusChange{Status: models.BookingStatusInProgress})

	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusInProgress, b.Status)
	assert.False(t, b.AdminConfirmed)
	assert.Zero(t, b.FinalAmount)
	assert.Zero(t, b.Payment.Amount)
}

func TestApplyPersistsNotesVerbatim(t *testing.T) {
	b := pendingBooking()
	notes := "  customer asked to ring twice <b>unsanitized</b>  "

	err := Apply(b, models.RoleEmployee, StatusChange{
		Status: models.BookingStatusPendingWeather,
		Notes:  notes,
	})

	require.NoError(t, err)
	assert.Equal(t, notes, b.Notes)
}

func TestApplyEmptyNotesKeepExistingNotes(t *testing.T) {
	b := pendingBooking()
	b.Notes = "gate code 4412"

	err := Apply(b, models.RoleEmployee, StatusChange{
		Status: models.BookingStatusInProgress,
	})

	require.NoError(t, err)
	assert.Equal(t, "gate code 4412", b.Notes)
}

func TestAssignForcesInProgress(t *testing.T) {
	employee := &models.User{ID: 7, Role: models.RoleEmployee}

	for _, prior := range models.AllBookingStatuses {
		b := pendingBooking()
		b.Status = prior

		err := Assign(b, employee)

		require.NoError(t, err, "prior status %s", prior)
		require.NotNil(t, b.EmployeeID)
		assert.Equal(t, uint(7), *b.EmployeeID)
		assert.Equal(t, models.BookingStatusInProgress, b.Status)
	}
}

func TestAssignRejectsNonEmployee(t *testing.T) {
	b := pendingBooking()

	err := Assign(b, &models.User{ID: 9, Role: models.RoleCustomer})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Nil(t, b.EmployeeID)
}

func TestCanCustomerDelete(t *testing.T) {
	cases := map[models.BookingStatus]bool{
		models.BookingStatusPending:             true,
		models.BookingStatusInProgress:          true,
		models.BookingStatusCompleted:           false,
		models.BookingStatusCancelled:           false,
		models.BookingStatusAwaitingAdminReview: false,
		models.BookingStatusPendingWeather:      false,
	}
	for status, want := range cases {
		b := pendingBooking()
		b.Status = status
		assert.Equal(t, want, CanCustomerDelete(b), "status %s", status)
	}
}

func TestIsReviewable(t *testing.T) {
	b := pendingBooking()
	assert.False(t, IsReviewable(b))

	b.Status = models.BookingStatusAwaitingAdminReview
	assert.False(t, IsReviewable(b))

	require.NoError(t, Apply(b, models.RoleAdmin, StatusChange{
		Status:      models.BookingStatusCompleted,
		FinalAmount: amount(120),
	}))
	assert.True(t, IsReviewable(b))
}

// Full lifecycle: created Pending, assigned, worked, employee completion
// intent, admin confirmation.
func TestBookingLifecycleEndToEnd(t *testing.T) {
	b := pendingBooking()
	employee := &models.User{ID: 42, Role: models.RoleEmployee}

	require.NoError(t, Assign(b, employee))
	assert.Equal(t, models.BookingStatusInProgress, b.Status)

	require.NoError(t, Apply(b, models.RoleEmployee, StatusChange{
		Status: models.BookingStatusCompleted,
		Notes:  "replaced compressor",
	}))
	assert.Equal(t, models.BookingStatusAwaitingAdminReview, b.Status)
	assert.False(t, b.AdminConfirmed)

	require.NoError(t, Apply(b, models.RoleAdmin, StatusChange{
		Status:      models.BookingStatusCompleted,
		FinalAmount: amount(400),
	}))

	assert.Equal(t, models.BookingStatusCompleted, b.Status)
	assert.True(t, b.AdminConfirmed)
	assert.Equal(t, 400.0, b.FinalAmount)
	assert.Equal(t, 400.0, b.Payment.Amount)
	assert.Equal(t, models.PaymentStatusPending, b.Payment.Status)
	assert.Equal(t, "replaced compressor", b.Notes)
}
