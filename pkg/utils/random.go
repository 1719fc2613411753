package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID выдает случайный ID для консоли, которая не представилась.
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return "console_" + hex.EncodeToString(b)
}
