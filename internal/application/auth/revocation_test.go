package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevocationList_VenceYPurga(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewRevocationList()
	l.now = func() time.Time { return now }

	l.Revoke("a", now.Add(time.Minute))
	l.Revoke("", now.Add(time.Hour))
	assert.True(t, l.IsRevoked("a"))
	assert.False(t, l.IsRevoked("b"))
	assert.Equal(t, 1, l.Len())

	now = now.Add(2 * time.Minute)
	assert.False(t, l.IsRevoked("a"))

	l.Revoke("c", now.Add(time.Minute))
	assert.Equal(t, 1, l.Len())
}
