package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJWT(t *testing.T) {
	token, err := SignJWT("editor", "s3cret", time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	claims, err := ValidateJWT(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "editor", claims.Subject)

	_, err = ValidateJWT(token, "other")
	assert.Error(t, err)
}

func TestValidateJWT_Expired(t *testing.T) {
	token, err := SignJWT("editor", "s3cret", time.Now().Add(-time.Hour).Unix())
	require.NoError(t, err)

	_, err = ValidateJWT(token, "s3cret")
	assert.Error(t, err)
}
