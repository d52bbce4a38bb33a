// Package docdb defines the document database client interface.
package docdb

import (
	"context"
)

// Client defines the interface for a document database client bound to a
// single database and collection.
type Client interface {
	// Database returns the bound database.
	Database() Database

	// Collection returns the bound collection.
	Collection() Collection

	// Ping verifies the database connection.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}
