// Package docdb provides the document database type constants.
package docdb

import (
	"fmt"
)

// Type represents the type of document database.
type Type string

const (
	// TypeMongoDB represents a MongoDB database.
	TypeMongoDB Type = "mongodb"
	// TypeCosmosDB represents an Azure Cosmos DB database.
	TypeCosmosDB Type = "cosmosdb"
)

// ConnectionParams identifies the server, credentials and collection a
// client is bound to. It is fixed for the lifetime of the client.
type ConnectionParams struct {
	User       string
	Password   string
	Host       string
	Port       int
	Database   string
	Collection string
}

// Validate checks that the parameters can address a collection.
func (p ConnectionParams) Validate() error {
	if p.Host == "" {
		return fmt.Errorf("host is required")
	}
	if p.Port <= 0 || p.Port > 65535 {
		return fmt.Errorf("port %d is out of range", p.Port)
	}
	if p.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if p.Collection == "" {
		return fmt.Errorf("collection name is required")
	}
	if p.User == "" && p.Password != "" {
		return fmt.Errorf("password given without user")
	}
	return nil
}
