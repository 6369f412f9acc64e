// Package lifecycle enforces the booking status state machine: which
// statuses each actor role may request, how a Completed intent is
// interpreted per role, and how admin confirmation settles the payment
// record.
package lifecycle

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"appliance-booking-server/models"
)

// ValidationError is returned for rejected status changes. Handlers map
// it to a 400; anything else is a 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a lifecycle validation error
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// StatusChange is a requested status transition
type StatusChange struct {
	Status      models.BookingStatus
	Notes       string
	FinalAmount *float64
}

// roleAllowedStatuses maps each actor role to the statuses it may request.
// A role requesting Completed does not necessarily store Completed; see Apply.
var roleAllowedStatuses = map[models.UserRole][]models.BookingStatus{
	models.RoleCustomer: {
		models.BookingStatusCancelled,
	},
	models.RoleEmployee: {
		models.BookingStatusInProgress,
		models.BookingStatusCompleted,
		models.BookingStatusPendingWeather,
		models.BookingStatusPendingCustomer,
		models.BookingStatusPendingTechnical,
	},
	models.RoleCustomerCare: {
		models.BookingStatusPending,
		models.BookingStatusInProgress,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
		models.BookingStatusPendingWeather,
		models.BookingStatusPendingCustomer,
		models.BookingStatusPendingTechnical,
	},
	models.RoleAdmin: {
		models.BookingStatusPending,
		models.BookingStatusInProgress,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
		models.BookingStatusPendingWeather,
		models.BookingStatusPendingCustomer,
		models.BookingStatusPendingTechnical,
		models.BookingStatusAwaitingAdminReview,
	},
}

// AllowedStatuses returns the statuses the given role may request
func AllowedStatuses(role models.UserRole) []models.BookingStatus {
	return roleAllowedStatuses[role]
}

func roleAllows(role models.UserRole, status models.BookingStatus) bool {
	for _, s := range roleAllowedStatuses[role] {
		if s == status {
			return true
		}
	}
	return false
}

func allowedSetString(role models.UserRole) string {
	allowed := roleAllowedStatuses[role]
	names := make([]string, 0, len(allowed))
	for _, s := range allowed {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Apply validates the requested change for the actor role and mutates the
// booking in memory. On error the booking is left untouched; the caller
// persists on success.
//
// Rules:
//   - the requested status must belong to the fixed enumeration and to the
//     actor's allowed subset;
//   - employee and customer-care Completed is stored as
//     "Completed - Awaiting Admin Confirmation";
//   - admin Completed requires a final amount and settles the payment record
//     (amount tracked, status "pending" until collected);
//   - any status other than admin Completed resets adminConfirmed and
//     finalAmount;
//   - non-empty notes are persisted verbatim; empty notes mean "no note
//     supplied" and leave any existing notes in place.
func Apply(b *models.Booking, actor models.UserRole, change StatusChange) error {
	if !models.IsValidBookingStatus(change.Status) {
		return validationErrorf("invalid status %q, allowed statuses: %s",
			change.Status, allowedSetString(actor))
	}
	if !roleAllows(actor, change.Status) {
		return validationErrorf("role %s may not set status %q, allowed statuses: %s",
			actor, change.Status, allowedSetString(actor))
	}

	switch {
	case change.Status == models.BookingStatusCompleted && actor == models.RoleAdmin:
		// Admin confirmation path: the only way into terminal Completed.
		// The source never rejected a negative settlement; neither do we.
		if change.FinalAmount == nil {
			return validationErrorf("final_amount is required to confirm completion")
		}
		amount := normalizeAmount(*change.FinalAmount)
		b.Status = models.BookingStatusCompleted
		b.AdminConfirmed = true
		b.FinalAmount = amount
		b.Payment.Amount = amount
		b.Payment.Status = models.PaymentStatusPending

	case change.Status == models.BookingStatusCompleted:
		// Employee/care completion intent waits for admin confirmation.
		b.Status = models.BookingStatusAwaitingAdminReview
		b.AdminConfirmed = false
		b.FinalAmount = 0
		b.Payment.Amount = 0

	default:
		// adminConfirmed holds only while the status is Completed; any
		// other status undoes the settlement.
		b.Status = change.Status
		b.AdminConfirmed = false
		b.FinalAmount = 0
		b.Payment.Amount = 0
	}

	if change.Notes != "" {
		b.Notes = change.Notes
	}

	return nil
}

// Assign binds an employee to the booking. Assignment unconditionally
// forces In Progress, whatever the prior status. The employee record must
// already be validated by the caller (exists, role employee, active).
func Assign(b *models.Booking, employee *models.User) error {
	if !employee.IsEmployee() {
		return validationErrorf("user %d is not an employee", employee.ID)
	}
	id := employee.ID
	b.EmployeeID = &id
	b.Status = models.BookingStatusInProgress
	return nil
}

// CanCustomerDelete reports whether the customer may hard-delete the
// booking (direct cancellation while still Pending or In Progress).
func CanCustomerDelete(b *models.Booking) bool {
	return b.Status == models.BookingStatusPending || b.Status == models.BookingStatusInProgress
}

// IsReviewable reports whether the booking is in a state a customer may
// review: admin-confirmed completion only.
func IsReviewable(b *models.Booking) bool {
	return b.Status == models.BookingStatusCompleted && b.AdminConfirmed
}

// normalizeAmount rounds a settlement amount to two decimal places before
// it is persisted to the payment record.
func normalizeAmount(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
