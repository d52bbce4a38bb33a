// Package testutils provides test utilities and helpers.
package testutils

import (
	"github.com/Antles/FinalCS340/internal/domain/models"
)

// Test constants
const (
	TestCollection = "animals"
	TestDatabase   = "AAC"
)

// NewTestAnimal returns a shelter record like the ones in the animals collection.
func NewTestAnimal(name, breed string) models.Document {
	return models.Document{
		"name":             name,
		"animal_type":      "Dog",
		"breed":            breed,
		"age_upon_outcome": "2 years",
		"outcome_type":     "Adoption",
	}
}

// SeedAnimals returns a small fixed data set.
func SeedAnimals() []models.Document {
	return []models.Document{
		NewTestAnimal("Rex", "German Shepherd"),
		NewTestAnimal("Bella", "Labrador Retriever Mix"),
		NewTestAnimal("Max", "German Shepherd"),
	}
}
