// Package storage is the storefront client's durable key-value store.
package storage

import "errors"

// Keys used by the storefront.
const (
	KeyCart  = "tabaumCart"
	KeyToken = "token"
	KeyUser  = "user"
)

var ErrNotFound = errors.New("storage: key not found")

// Store holds string values under string keys. Implementations are not
// required to be safe for concurrent use.
type Store interface {
	// Get returns ErrNotFound when key is absent.
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(keys ...string) error
}
