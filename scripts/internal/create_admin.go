package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/betulabla/foundation/internal/api/dto"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/service"
	"github.com/betulabla/foundation/internal/types"
)

// CreateAdmin registers an admin from USERNAME, USER_EMAIL and USER_PASSWORD.
// Running it again for an existing username is a no-op.
func CreateAdmin() error {
	username := os.Getenv("USERNAME")
	email := os.Getenv("USER_EMAIL")
	password := os.Getenv("USER_PASSWORD")

	if username == "" || email == "" || password == "" {
		return fmt.Errorf("usage: go run scripts/main.go -cmd=create-admin -username=<username> -user-email=<email> -user-password=<password>")
	}

	s, err := newScript()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()

	existing, err := s.params.UserRepo.GetByUsername(ctx, username)
	if err == nil {
		s.log.Infow("user already exists", "id", existing.ID, "username", existing.Username, "role", existing.Role)
		return nil
	}
	if !ierr.IsNotFound(err) {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	resp, err := service.NewAuthService(s.params).Register(ctx, &dto.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
		Role:            types.UserRoleAdmin,
		FullName:        "Administrator",
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Printf("Successfully created admin %s\n", username)
	fmt.Printf("User ID: %s\n", resp.User.ID)
	return nil
}
