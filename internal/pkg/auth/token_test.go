package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-service/internal/config"
)

const testSecret = "thisisaverylongsecretkeythatis32chars"

func newTestIssuer(t *testing.T, ttl time.Duration) *hmacTokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(&config.AuthConfig{
		JWTSecret: testSecret,
		TokenTTL:  ttl,
	})
	require.NoError(t, err)
	return issuer.(*hmacTokenIssuer)
}

func TestNewTokenIssuer(t *testing.T) {
	t.Run("rejects short secret", func(t *testing.T) {
		_, err := NewTokenIssuer(&config.AuthConfig{
			JWTSecret: "too-short",
			TokenTTL:  time.Hour,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})
}

func TestTokenIssuer_IssueValidate(t *testing.T) {
	t.Run("roundtrip returns agency id", func(t *testing.T) {
		issuer := newTestIssuer(t, 7*24*time.Hour)
		agencyID := uuid.New()

		token, err := issuer.Issue(agencyID)
		require.NoError(t, err)
		assert.Equal(t, 3, len(strings.Split(token, ".")))

		got, err := issuer.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, agencyID, got)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		issuer := newTestIssuer(t, time.Hour)
		agencyID := uuid.New()

		issuedAt := time.Now().Add(-2 * time.Hour)
		issuer.timeFunc = func() time.Time { return issuedAt }

		token, err := issuer.Issue(agencyID)
		require.NoError(t, err)

		issuer.timeFunc = time.Now
		_, err = issuer.Validate(token)
		assert.Error(t, err)
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		issuer := newTestIssuer(t, time.Hour)

		token, err := issuer.Issue(uuid.New())
		require.NoError(t, err)

		tampered := token[:len(token)-2] + "xx"
		_, err = issuer.Validate(tampered)
		assert.Error(t, err)
	})

	t.Run("token signed with other key rejected", func(t *testing.T) {
		issuer := newTestIssuer(t, time.Hour)
		other := newTestIssuer(t, time.Hour)
		other.signingKey = []byte("anotherverylongsecretkeythatis32char")

		token, err := other.Issue(uuid.New())
		require.NoError(t, err)

		_, err = issuer.Validate(token)
		assert.Error(t, err)
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		issuer := newTestIssuer(t, time.Hour)

		claims := sessionClaims{
			AgencyID: uuid.New(),
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Validate(token)
		assert.Error(t, err)
	})
}
