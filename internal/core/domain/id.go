package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Entity ids are ObjectID-format strings: 24 lowercase hex characters.
// They are opaque to clients and validated at the API boundary before any
// persistence call.

func NewID() string {
	return primitive.NewObjectID().Hex()
}

func ParseID(s string) (string, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return "", ErrInvalidID
	}
	return id.Hex(), nil
}
