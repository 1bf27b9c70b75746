package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// NewQuoteReference generates a quote reference: "Q" plus a random suffix.
func NewQuoteReference() string {
	return "Q" + strings.ToUpper(uuid.New().String()[:8])
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")

	reg := regexp.MustCompile("[^a-z0-9-]")
	s = reg.ReplaceAllString(s, "")

	reg = regexp.MustCompile("-+")
	s = reg.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
