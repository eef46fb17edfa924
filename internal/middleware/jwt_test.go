package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
	"github.com/ojtrack/ojt-tracker-api/internal/service"
)

type singleSubjectRepo struct {
	subject *models.Subject
}

func (r *singleSubjectRepo) FindByEmail(_ context.Context, email string) (*models.Subject, error) {
	if r.subject == nil || r.subject.Email != email {
		return nil, sql.ErrNoRows
	}
	return r.subject, nil
}

func (r *singleSubjectRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return r.subject != nil && r.subject.Email == email, nil
}

func (r *singleSubjectRepo) Create(_ context.Context, _ *models.Subject) error {
	return nil
}

func jwtRouter(authSvc *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWT(authSvc), func(c *gin.Context) {
		claims := c.MustGet(ContextUserKey).(*models.JWTClaims)
		c.JSON(http.StatusOK, gin.H{"subject_id": claims.SubjectID})
	})
	return router
}

func TestJWTMiddlewareAcceptsIssuedToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &singleSubjectRepo{subject: &models.Subject{
		ID:           "stu-1",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
	}}
	authSvc := service.NewAuthService(repo, nil, zap.NewNop(), service.AuthConfig{Secret: "test-secret", Expiration: time.Hour})

	login, err := authSvc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	router := jwtRouter(authSvc)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stu-1")
}

func TestJWTMiddlewareRejectsMissingOrMalformedHeader(t *testing.T) {
	authSvc := service.NewAuthService(&singleSubjectRepo{}, nil, zap.NewNop(), service.AuthConfig{Secret: "test-secret"})
	router := jwtRouter(authSvc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareRejectsGarbageToken(t *testing.T) {
	authSvc := service.NewAuthService(&singleSubjectRepo{}, nil, zap.NewNop(), service.AuthConfig{Secret: "test-secret"})
	router := jwtRouter(authSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
