package auth

import (
	"testing"
	"time"

	"github.com/ghxstship/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Enabled:               true,
		Secret:                testSecret,
		Issuer:                "ghxstship",
		AccessTokenExpiration: 15 * time.Minute,
	})
}

func TestIssueAndValidate(t *testing.T) {
	svc := newTestJWTService()
	tenantID, userID := uuid.New(), uuid.New()

	token, expiresAt, err := svc.Issue(IssueInput{TenantID: tenantID, UserID: userID, Email: "ops@ghx.test", Role: "producer"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	gotTenant, err := claims.TenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)
	gotUser, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "producer", claims.Role)
}

func TestValidate_Expired(t *testing.T) {
	svc := newTestJWTService()
	token, _, err := svc.Issue(IssueInput{TenantID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	other := NewJWTService(config.JWTConfig{Secret: "another-secret-entirely-32-chars", Issuer: "ghxstship"})
	token, _, err := other.Issue(IssueInput{TenantID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	_, err = newTestJWTService().Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongIssuer(t *testing.T) {
	other := NewJWTService(config.JWTConfig{Secret: testSecret, Issuer: "someone-else"})
	token, _, err := other.Issue(IssueInput{TenantID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	_, err = newTestJWTService().Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "ghxstship",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TenantID: uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestJWTService().Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = newTestJWTService().Validate(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_ClaimChecks(t *testing.T) {
	sign := func(c *Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	base := func() *Claims {
		return &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				Issuer:    "ghxstship",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			TenantID: uuid.NewString(),
		}
	}

	noTenant := base()
	noTenant.TenantID = ""
	_, err := newTestJWTService().Validate(sign(noTenant))
	assert.ErrorIs(t, err, ErrMissingTenantID)

	badSubject := base()
	badSubject.Subject = "not-a-uuid"
	_, err = newTestJWTService().Validate(sign(badSubject))
	assert.ErrorIs(t, err, ErrMissingSubject)

	noExpiry := base()
	noExpiry.ExpiresAt = nil
	_, err = newTestJWTService().Validate(sign(noExpiry))
	assert.ErrorIs(t, err, ErrInvalidToken)

	future := base()
	future.NotBefore = jwt.NewNumericDate(time.Now().Add(10 * time.Minute))
	_, err = newTestJWTService().Validate(sign(future))
	assert.ErrorIs(t, err, ErrTokenNotYetValid)
}

func TestMissingSecret(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{})
	_, _, err := svc.Issue(IssueInput{})
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = svc.Validate("x.y.z")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
