package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Prints bcrypt hashes for seeding demo accounts by hand.
// Usage: go run scripts/genhash.go <password> [password...]
func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"recruiter123", "candidate123"}
	}

	for _, pass := range args {
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), 10)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", pass, string(hash))
	}
}
