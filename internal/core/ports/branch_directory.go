package ports

import (
	"context"

	"bakehouse/internal/core/domain/model/kernel"
)

// Branch is the directory entry for one retail branch. The directory itself
// is owned by an external system; the engine only reads it for the
// bill-number prefix and receipt data.
type Branch struct {
	ID      kernel.UUID
	Name    string
	Address string
	Phone   string
}

// BranchDirectory resolves branch references.
type BranchDirectory interface {
	// GetBranch retrieves a branch entry by id.
	GetBranch(ctx context.Context, id kernel.UUID) (Branch, error)
}
