package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import (
	"context"

	"integrityapi/internal/model"
)

// AnalysisRepository defines persistence for analysis records using SQL only.
// No business logic here.
type AnalysisRepository interface {
	// Create inserts a new analysis record and returns the stored row.
	Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error)

	// FindByID returns an analysis by its ID.
	FindByID(ctx context.Context, id string) (*model.Analysis, error)

	// List returns a paginated list of analyses and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Analysis], error)

	// Delete removes an analysis by ID. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
