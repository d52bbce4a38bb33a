// Package dotenv provides a dotenv-based vault implementation for development.
package dotenv

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Antles/FinalCS340/internal/core/vault"
)

// URIPrefix prefixes every secret URI served by this vault.
const URIPrefix = "dotenv://"

// Client implements the vault.Client interface using environment variables
// and dotenv files. Secrets from files take precedence over the process
// environment. Files are read once by NewClient.
type Client struct {
	fromFile map[string]string
}

// NewClient creates a new DotEnv vault client reading the given files.
func NewClient(files ...string) (*Client, error) {
	fromFile := map[string]string{}
	if len(files) > 0 {
		values, err := godotenv.Read(files...)
		if err != nil {
			return nil, fmt.Errorf("failed to read dotenv files: %w", err)
		}
		fromFile = values
	}

	return &Client{fromFile: fromFile}, nil
}

// GetSecret retrieves a secret by its dotenv:// URI.
func (c *Client) GetSecret(ctx context.Context, uri string) (string, error) {
	key := strings.TrimPrefix(uri, URIPrefix)

	if value, ok := c.fromFile[key]; ok && value != "" {
		return value, nil
	}
	if value := os.Getenv(key); value != "" {
		return value, nil
	}

	return "", fmt.Errorf("%w: %s", vault.ErrSecretNotFound, key)
}

// Ping always succeeds for dotenv.
func (c *Client) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for dotenv.
func (c *Client) Close() error {
	return nil
}
