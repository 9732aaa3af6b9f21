package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateSessionID generates a unique viewing-session ID.
func GenerateSessionID() string {
	return uuid.New().String()
}

// GenerateUserID generates a unique user ID.
func GenerateUserID() string {
	return uuid.New().String()
}

// GenerateClientID generates an ID for a sync-server connection.
func GenerateClientID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return fmt.Sprintf("client_%s", hex.EncodeToString(b))
}

// GenerateRequestID generates a unique request ID.
func GenerateRequestID() string {
	b := make([]byte, 4)
	rand.Read(b)
	return fmt.Sprintf("req_%d_%s", time.Now().UnixNano(), hex.EncodeToString(b))
}
