package store

import (
	"context"
	"errors"

	"github.com/eon-group/expiring-link-service/internal/app/model"
)

var (
	// ErrLinkNotFound signals that no record exists for the identifier.
	ErrLinkNotFound = errors.New("link not found")
	// ErrLinkExists signals an insert collision on the identifier.
	ErrLinkExists = errors.New("link already exists")
)

// LinkStore is the key-value contract the service is built on: point insert,
// point read, unconditional overwrite. Any store with those three operations
// can back the service; expiry itself is a read-time timestamp comparison,
// so backends must not attach their own TTLs to records.
type LinkStore interface {
	Insert(ctx context.Context, link *model.Link) error
	Get(ctx context.Context, identifier string) (*model.Link, error)
	Replace(ctx context.Context, link *model.Link) error
}
