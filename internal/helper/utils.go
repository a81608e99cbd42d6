package helper

import "github.com/google/uuid"

// GenerateUUID returns a random document ID for stored embeddings.
func GenerateUUID() string {
	return uuid.NewString()
}
