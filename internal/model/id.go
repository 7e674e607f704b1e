package model

import (
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidID = errors.New("invalid id format")

var idPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// NewID returns a fresh 24-hex-character identifier.
// Ids are ObjectID-shaped regardless of the backing store so they stay portable.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a 24-character hexadecimal string.
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}
