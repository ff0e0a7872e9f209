package database

import (
	"context"
)

type Repository[T IModel] interface {
	// GetConnector returns the connector used by this repository. Useful for
	// advanced operations not covered by the repository methods.
	GetConnector() Connector

	// Find retrieves all documents matching the filter. If no documents
	// match, it returns an empty slice.
	Find(ctx context.Context, filter *Filter) ([]T, error)

	// FindOne retrieves a single document matching the filter, or nil when
	// no document matches.
	FindOne(ctx context.Context, filter *Filter) (*T, error)

	// FindById retrieves a single document by its ID, or nil when it does
	// not exist.
	FindById(ctx context.Context, id any) (*T, error)

	// Create inserts a new document and returns the stored document.
	Create(ctx context.Context, doc T) (*T, error)

	// UpdateById applies a $set-style update to a single document. It fails
	// with a not-found error when the document does not exist.
	UpdateById(ctx context.Context, id any, update any) error

	// DeleteById deletes a single document by its ID. It fails with a
	// not-found error when the document does not exist.
	DeleteById(ctx context.Context, id any) error

	// Count returns the number of documents matching the filter.
	Count(ctx context.Context, filter *Filter) (int64, error)

	// Exists checks if a document with the given ID exists.
	Exists(ctx context.Context, id any) (bool, error)
}
