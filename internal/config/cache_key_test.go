package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "login:42", CacheKey.UserSessionKey(42))
	assert.Equal(t, "document:abc:payload", CacheKey.DocumentPayloadKey("abc"))
	assert.Equal(t, "document:abc:templates", CacheKey.DocumentTemplatesKey("abc"))
	assert.Equal(t, "quota:42:2026-09-01", CacheKey.DailyQuotaKey(42, "2026-09-01"))
}

func TestDictationDraftKeyArgumentOrder(t *testing.T) {
	// documentID first, userID second; the rendered key nests the user.
	assert.Equal(t, "user:7:document:doc-1:drafts", CacheKey.DictationDraftKey("doc-1", 7))
}
