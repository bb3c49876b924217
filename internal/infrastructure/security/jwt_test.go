package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestPreviewTokenRoundTrip(t *testing.T) {
	token, err := GeneratePreviewToken("01ARZ3NDEKTSV4RRFFQ69G5FAV", testSecret, time.Hour)
	require.NoError(t, err)

	snapshotID, ok := SnapshotIDFromPreviewToken(token, testSecret)
	require.True(t, ok)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", snapshotID)
}

func TestPreviewTokenEmpty(t *testing.T) {
	_, ok := SnapshotIDFromPreviewToken("", testSecret)
	assert.False(t, ok)
}

func TestPreviewTokenMalformed(t *testing.T) {
	_, ok := SnapshotIDFromPreviewToken("not.a.jwt", testSecret)
	assert.False(t, ok)
}

func TestPreviewTokenWrongSecret(t *testing.T) {
	token, err := GeneratePreviewToken("snap", testSecret, time.Hour)
	require.NoError(t, err)

	_, ok := SnapshotIDFromPreviewToken(token, "different-secret")
	assert.False(t, ok, "tampered or foreign tokens carry no session")
}

func TestPreviewTokenExpired(t *testing.T) {
	token, err := GeneratePreviewToken("snap", testSecret, -time.Minute)
	require.NoError(t, err)

	_, ok := SnapshotIDFromPreviewToken(token, testSecret)
	assert.False(t, ok, "an expired session is simply no session")
}

func TestPreviewTokenRejectsAuthTokens(t *testing.T) {
	token, err := GenerateAuthToken("editor", testSecret, time.Hour)
	require.NoError(t, err)

	_, ok := SnapshotIDFromPreviewToken(token, testSecret)
	assert.False(t, ok, "token types must not be interchangeable")
}

func TestAuthTokenRoundTrip(t *testing.T) {
	token, err := GenerateAuthToken("editor", testSecret, time.Hour)
	require.NoError(t, err)

	role, ok := RoleFromAuthToken(token, testSecret)
	require.True(t, ok)
	assert.Equal(t, "editor", role)
}

func TestAuthTokenRejectsPreviewTokens(t *testing.T) {
	token, err := GeneratePreviewToken("snap", testSecret, time.Hour)
	require.NoError(t, err)

	_, ok := RoleFromAuthToken(token, testSecret)
	assert.False(t, ok)
}

func TestGenerateSnapshotID(t *testing.T) {
	first := GenerateSnapshotID()
	second := GenerateSnapshotID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	assert.Len(t, first, 26, "ULIDs are 26 characters")
}
