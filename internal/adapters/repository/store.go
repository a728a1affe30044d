// Package repository defines the collection store interface and its in-memory implementation.
package repository

import "context"

// Record is anything stored in a collection: it must expose its id.
type Record interface {
	RecordID() int
}

// Store provides ordered access to one collection of records.
type Store[T Record] interface {
	// List returns every record in insertion order. The slice is a copy.
	List(ctx context.Context) []T

	// Create assigns the next id, builds the record with it and appends it.
	Create(ctx context.Context, build func(id int) T) T

	// Delete removes every record with the given id.
	// Returns ErrNotFound if nothing was removed.
	Delete(ctx context.Context, id int) error

	// Count returns the number of records.
	Count(ctx context.Context) int

	// NextID returns the id the next Create will assign.
	NextID(ctx context.Context) int
}
