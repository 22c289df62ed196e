package id

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID(prefix string) (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns "<slug(prefix)>-<uuid v4>", or the bare uuid when prefix
// has no usable characters.
func (g *UUIDGenerator) NewID(prefix string) (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	if slug := Slug(prefix); slug != "" {
		return slug + "-" + u.String(), nil
	}
	return u.String(), nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and collapses runs of other characters into "-".
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
