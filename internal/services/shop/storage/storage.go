package storage

import (
	"github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/services/shop/account"
	"github.com/asjuices/storefront/internal/services/shop/catalog"
	"github.com/asjuices/storefront/internal/services/shop/orders"
	"github.com/asjuices/storefront/internal/services/shop/schedule"
	"github.com/asjuices/storefront/internal/services/shop/websession"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New(errors.CodeNotFound, "record not found")

// ErrConflict indicates a write collided with a unique key.
var ErrConflict = errors.New(errors.CodeConflict, "record already exists")

// Store is the full persistence surface of the storefront.
type Store interface {
	catalog.Store
	account.Store
	websession.Store
	orders.Store
	schedule.Store
	Close() error
}
