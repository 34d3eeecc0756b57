package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/response"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/service"
)

type fakeTokenService struct {
	claims *service.Claims
}

func (f *fakeTokenService) Generate(*entity.User) (string, error) {
	return "token", nil
}

func (f *fakeTokenService) Validate(tokenString string) (*service.Claims, error) {
	if tokenString != "valid" || f.claims == nil {
		return nil, domainerrors.ErrAuthentication
	}

	return f.claims, nil
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func newAuthContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	claims := &service.Claims{UserID: uuid.New(), Email: "ana@example.com", Role: entity.RoleOperator}
	mw := NewAuthMiddleware(&fakeTokenService{claims: claims})

	c, _ := newAuthContext("Bearer valid")
	err := mw.Authenticate(func(c echo.Context) error {
		actor, ok := ActorFromContext(c)
		require.True(t, ok)
		assert.Equal(t, claims.UserID, actor.ID)
		assert.Equal(t, entity.RoleOperator, actor.Role)

		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
}

func TestAuthenticateRejectsBadHeaders(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(&fakeTokenService{})

	for _, header := range []string{"", "valid", "Bearer forged"} {
		c, rec := newAuthContext(header)
		require.NoError(t, mw.Authenticate(okHandler)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	adminClaims := &service.Claims{UserID: uuid.New(), Email: "admin@lonqui.cl", Role: entity.RoleAdmin}
	mw := NewAuthMiddleware(&fakeTokenService{claims: adminClaims})
	chain := mw.Authenticate(mw.RequireRoles(entity.RoleAdmin)(okHandler))

	c, rec := newAuthContext("Bearer valid")
	require.NoError(t, chain(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesRejectsOtherRoles(t *testing.T) {
	t.Parallel()

	for _, role := range []entity.Role{entity.RoleOperator, entity.RoleDriver, entity.RoleCustomer} {
		claims := &service.Claims{UserID: uuid.New(), Email: "x@lonqui.cl", Role: role}
		mw := NewAuthMiddleware(&fakeTokenService{claims: claims})
		chain := mw.Authenticate(mw.RequireRoles(entity.RoleAdmin)(okHandler))

		c, rec := newAuthContext("Bearer valid")
		require.NoError(t, chain(c))
		assert.Equal(t, http.StatusForbidden, rec.Code, "role %s", role)

		var body response.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.Error)
		assert.Equal(t, domainerrors.ErrPermissionDenied.ErrorCode(), body.Error.Code)
	}
}

func TestRequireRolesWithoutActor(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(&fakeTokenService{})

	c, rec := newAuthContext("")
	require.NoError(t, mw.RequireRoles(entity.RoleAdmin)(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
