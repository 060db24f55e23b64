package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
)

// generateSecret creates a random 256-bit key for signing access and refresh tokens
func generateSecret() []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("Unable to generate secret: %v", err)
	}
	return key
}

func main() {
	secret := generateSecret()
	fmt.Println("Set FOUNDATION_AUTH_SECRET to:", hex.EncodeToString(secret))
}
