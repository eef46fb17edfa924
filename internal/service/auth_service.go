package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ojtrack/ojt-tracker-api/internal/models"
	appErrors "github.com/ojtrack/ojt-tracker-api/pkg/errors"
)

type authSubjectRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Subject, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService provides registration and login use cases.
type AuthService struct {
	repo      authSubjectRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authSubjectRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.Expiration <= 0 {
		config.Expiration = 24 * time.Hour
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, now: time.Now, config: config}
}

// Register creates a new subject. Course is mandatory for students and
// coordinators, ignored for admins. Role is fixed at registration.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.SubjectInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	role := models.SubjectRole(strings.ToUpper(strings.TrimSpace(req.Role)))
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	course := strings.TrimSpace(req.Course)
	if role.RequiresCourse() && course == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingField, "please select a course/program")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to check email")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrEmailTaken, "this email is already registered, please log in instead")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	subject := &models.Subject{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	if role.RequiresCourse() {
		subject.Course = &course
	}

	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to create account")
	}
	s.logger.Info("subject registered",
		zap.String("subject_id", subject.ID),
		zap.String("role", string(role)))

	return &models.SubjectInfo{
		ID:     subject.ID,
		Name:   subject.Name,
		Email:  subject.Email,
		Role:   subject.Role,
		Course: subject.CourseName(),
	}, nil
}

// Login authenticates a subject and issues an access token. The response
// carries the role so the client can route to the right dashboard.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	subject, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(subject.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, issuedAt, err := s.issueToken(subject)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.Expiration.Seconds()),
		IssuedAt:    issuedAt,
		Subject: models.SubjectInfo{
			ID:     subject.ID,
			Name:   subject.Name,
			Email:  subject.Email,
			Role:   subject.Role,
			Course: subject.CourseName(),
		},
	}, nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) issueToken(subject *models.Subject) (string, time.Time, error) {
	issuedAt := s.now()
	claims := models.JWTClaims{
		SubjectID: subject.ID,
		Role:      subject.Role,
		Email:     subject.Email,
		Name:      subject.Name,
		Course:    subject.CourseName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   subject.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, issuedAt, nil
}
