package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"appliance-booking-server/models"
)

func TestValidatePasswordStrength(t *testing.T) {
	ok, problems := ValidatePasswordStrength("Abcdef12")
	assert.True(t, ok)
	assert.Empty(t, problems)

	ok, problems = ValidatePasswordStrength("short")
	assert.False(t, ok)
	assert.NotEmpty(t, problems)

	ok, _ = ValidatePasswordStrength("alllowercase1")
	assert.False(t, ok)

	ok, _ = ValidatePasswordStrength("NoDigitsHere")
	assert.False(t, ok)
}

func roleContext(role models.UserRole) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("user", models.User{ID: 1, Role: role, IsActive: true})
	return c, w
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	c, w := roleContext(models.RoleAdmin)

	RequireRoles(models.RoleAdmin, models.RoleCustomerCare)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	c, w := roleContext(models.RoleCustomer)

	RequireRoles(models.RoleAdmin)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesRejectsMissingUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RequireRoles(models.RoleAdmin)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiterReusesEntries(t *testing.T) {
	rl := NewRateLimiter()

	a := rl.GetLimiter("k", 1, 1)
	b := rl.GetLimiter("k", 1, 1)
	assert.Same(t, a, b)

	c := rl.GetLimiter("other", 1, 1)
	assert.NotSame(t, a, c)
}
