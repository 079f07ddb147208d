package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when a string is not a well-formed identifier.
var ErrInvalidID = errors.New("invalid id format")

// UserID, InfluencerID and MealID are distinct identifier types so that a
// meal id can never be passed where an influencer id is expected. They are
// constructed only through the Parse functions below.
type UserID string

type InfluencerID string

type MealID string

// IsValidID reports whether s is a well-formed identifier: the 24-character
// hexadecimal token exposed by the API layer. Request handlers call this
// before dispatching into the services.
func IsValidID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func ParseUserID(s string) (UserID, error) {
	if !IsValidID(s) {
		return "", ErrInvalidID
	}
	return UserID(s), nil
}

func ParseInfluencerID(s string) (InfluencerID, error) {
	if !IsValidID(s) {
		return "", ErrInvalidID
	}
	return InfluencerID(s), nil
}

func ParseMealID(s string) (MealID, error) {
	if !IsValidID(s) {
		return "", ErrInvalidID
	}
	return MealID(s), nil
}

func (id UserID) ObjectID() primitive.ObjectID       { return mustObjectID(string(id)) }
func (id InfluencerID) ObjectID() primitive.ObjectID { return mustObjectID(string(id)) }
func (id MealID) ObjectID() primitive.ObjectID       { return mustObjectID(string(id)) }

func mustObjectID(s string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		// Parse* already validated the hex token.
		panic("models: unvalidated id: " + s)
	}
	return oid
}
