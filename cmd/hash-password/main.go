package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/service"
)

const minPasswordLength = 6

// hash-password prints the bcrypt hash to put in ADMIN_PASSWORD_HASH.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()
	auth := service.NewAuthService(cfg)

	// ─── CLI Input ─────────────────────────────────────────────────────
	fmt.Fprintln(os.Stderr, "=== Hash Admin Password ===")

	password, err := readPassword("Enter Password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}
	if len(password) < minPasswordLength {
		fmt.Fprintf(os.Stderr, "Error: Password must be at least %d characters\n", minPasswordLength)
		os.Exit(1)
	}

	if term.IsTerminal(int(syscall.Stdin)) {
		confirm, err := readPassword("Confirm Password: ")
		if err != nil || confirm != password {
			fmt.Fprintln(os.Stderr, "Error: Passwords do not match")
			os.Exit(1)
		}
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Set this for user %q:\n", cfg.AdminUsername)
	fmt.Printf("ADMIN_PASSWORD_HASH='%s'\n", hash)
}

// readPassword reads without echo from a terminal, or one line from a pipe.
func readPassword(prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	return string(b), err
}
