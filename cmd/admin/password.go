package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"realestate-backend/internal/shared/auth"
)

var hashPasswordCommand = &cli.Command{
	Name:      "hash-password",
	Usage:     "Print a bcrypt hash for ADMIN_PASSWORD",
	ArgsUsage: "[password]",
	Action: func(c *cli.Context) error {
		password := c.Args().First()
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}
		if strings.TrimSpace(password) == "" {
			return errors.New("password argument or ADMIN_PASSWORD is required")
		}
		if auth.IsBcryptHash(password) {
			return errors.New("value is already a bcrypt hash")
		}

		hashed, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fmt.Fprintln(c.App.Writer, hashed)
		return nil
	},
}
