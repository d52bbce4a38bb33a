// Package vault defines the vault client interface.
package vault

import (
	"context"
	"errors"
	"fmt"
)

// ErrSecretNotFound is returned when a secret URI resolves to nothing.
var ErrSecretNotFound = errors.New("secret not found")

// Client provides access to secrets such as database credentials.
type Client interface {
	// GetSecret retrieves a secret by URI.
	GetSecret(ctx context.Context, uri string) (string, error)

	// Ping checks if the vault connection is alive.
	Ping(ctx context.Context) error

	// Close closes the vault client connection.
	Close() error
}

// ResolveSecret looks up uri and treats a missing secret as empty. An empty
// uri resolves to the empty string without contacting the vault.
func ResolveSecret(ctx context.Context, client Client, uri string) (string, error) {
	if uri == "" {
		return "", nil
	}
	value, err := client.GetSecret(ctx, uri)
	if errors.Is(err, ErrSecretNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve secret %s: %w", uri, err)
	}
	return value, nil
}
