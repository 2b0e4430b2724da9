package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingToken is returned when neither the environment nor the token file supplies a token
var ErrMissingToken = errors.New("please set GITHUB_TOKEN or create a token file")

// ResolveToken returns the configured token, falling back to the first
// line of the token file
func (c *Config) ResolveToken() (string, error) {
	if token := strings.TrimSpace(c.GitHub.Token); token != "" {
		return token, nil
	}
	if c.GitHub.TokenFile == "" {
		return "", ErrMissingToken
	}

	f, err := os.Open(c.GitHub.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w (%s not found)", ErrMissingToken, c.GitHub.TokenFile)
		}
		return "", fmt.Errorf("failed to open token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		if token := strings.TrimSpace(scanner.Text()); token != "" {
			return token, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return "", fmt.Errorf("%w (%s is empty)", ErrMissingToken, c.GitHub.TokenFile)
}
