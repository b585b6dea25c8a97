package auth

import (
	"testing"
	"time"

	"github.com/rookgm/lunchorder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_CreateVerify(t *testing.T) {
	token := NewAuthToken([]byte("secret"))

	s, err := token.CreateToken(&models.User{ID: 42, Login: "suzuki", IsAdmin: true})
	require.NoError(t, err)

	payload, err := token.VerifyToken(s)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), payload.UserID)
	assert.Equal(t, "suzuki", payload.Login)
	assert.True(t, payload.IsAdmin)
	assert.NotEmpty(t, payload.ID)
	assert.True(t, payload.ExpiredAt.After(payload.IssuedAt))
}

func TestToken_VerifyInvalid(t *testing.T) {
	token := NewAuthToken([]byte("secret"))
	other := NewAuthToken([]byte("other"))

	s, err := other.CreateToken(&models.User{ID: 1, Login: "ito"})
	require.NoError(t, err)

	_, err = token.VerifyToken(s)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = token.VerifyToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestToken_Expired(t *testing.T) {
	token := NewAuthToken([]byte("secret"))
	token.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	s, err := token.CreateToken(&models.User{ID: 1, Login: "ito"})
	require.NoError(t, err)

	_, err = token.VerifyToken(s)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
