package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateTaskID generates a random task id in the format tsk-XXXXXXXX.
func GenerateTaskID() (string, error) {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return "tsk-" + hex.EncodeToString(bytes), nil
}
