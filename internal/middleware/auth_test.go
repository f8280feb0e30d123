package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bookeasy/ticketing/internal/models"
	"github.com/bookeasy/ticketing/internal/repository"
	"github.com/bookeasy/ticketing/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.user, nil
}
func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.user, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newAuthService() service.AuthService {
	return service.NewAuthService(&stubUserRepo{}, "test-secret", time.Hour)
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func requestWith(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings/user", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func issueToken(t *testing.T) string {
	t.Helper()
	// Build a token through the same code path the login endpoint uses.
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &stubUserRepo{user: &models.User{
		ID:           42,
		Username:     "alice",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}}
	auth := service.NewAuthService(repo, "test-secret", time.Hour)
	token, _, err := auth.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	return token
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token := issueToken(t)

	c, rec := requestWith("Bearer " + token)
	mw := RequireAuth(newAuthService())
	err := mw(okHandler)(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), CallerID(c))
	assert.Equal(t, models.RoleUser, c.Get(ContextRole))
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	c, _ := requestWith("")
	mw := RequireAuth(newAuthService())
	err := mw(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuth_NotBearer(t *testing.T) {
	c, _ := requestWith("Basic abc123")
	mw := RequireAuth(newAuthService())
	err := mw(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	c, _ := requestWith("Bearer not.a.token")
	mw := RequireAuth(newAuthService())
	err := mw(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	token := issueToken(t)

	c, _ := requestWith("Bearer " + token)
	other := service.NewAuthService(&stubUserRepo{}, "different-secret", time.Hour)
	mw := RequireAuth(other)
	err := mw(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireRole_Matches(t *testing.T) {
	c, rec := requestWith("")
	c.Set(ContextRole, models.RoleAdmin)

	mw := RequireRole(models.RoleAdmin)
	assert.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_AdminCannotReserve(t *testing.T) {
	c, _ := requestWith("")
	c.Set(ContextRole, models.RoleAdmin)

	mw := RequireRole(models.RoleUser)
	err := mw(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireRole_Unset(t *testing.T) {
	c, _ := requestWith("")

	mw := RequireRole(models.RoleUser)
	err := mw(okHandler)(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}
