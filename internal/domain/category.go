package domain

import (
	"regexp"
	"time"
)

var categoryKeyPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Category struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	NameBn    string    `json:"nameBn,omitempty"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidCategoryKey reports whether key is a lowercase slug such as "home-decor".
func ValidCategoryKey(key string) bool {
	return categoryKeyPattern.MatchString(key)
}
