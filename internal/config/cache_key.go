package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// DocumentPayloadKey returns the cache key for a published document's
// reference payload (stripped text, full section tree)
func (r *CacheKeyStruct) DocumentPayloadKey(documentID string) string {
	return fmt.Sprintf("document:%s:payload", documentID)
}

// DocumentTemplatesKey returns the cache key for the hash of
// block ID -> raw template used for in-RAM grading
func (r *CacheKeyStruct) DocumentTemplatesKey(documentID string) string {
	return fmt.Sprintf("document:%s:templates", documentID)
}

// DictationDraftKey returns the cache key for a user's in-progress
// dictation drafts on a document
func (r *CacheKeyStruct) DictationDraftKey(documentID string, userID int) string {
	return fmt.Sprintf("user:%d:document:%s:drafts", userID, documentID)
}

// DailyQuotaKey returns the cache key counting documents opened by a
// free-tier user on a given day (day formatted as 2006-01-02)
func (r *CacheKeyStruct) DailyQuotaKey(userID int, day string) string {
	return fmt.Sprintf("quota:%d:%s", userID, day)
}

var CacheKey = NewCacheKeyStruct()
