package cache

import "strings"

const (
	GlobalKeyPrefix = "quizimport"

	// ImportService is the service segment of every import-related key.
	ImportService = "import"
	// DraftObject is the object type of parsed preview drafts.
	DraftObject = "draft"
)

// GenerateCacheKey builds "<prefix>:<service>:<type>:<id>", appending any
// extra params joined by "_" as a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// DraftKey returns the key a parsed preview draft is stored under.
func DraftKey(draftID string) string {
	return GenerateCacheKey(ImportService, DraftObject, draftID)
}
