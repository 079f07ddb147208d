package services

import (
	"errors"

	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

// The failure taxonomy of every service operation. Expected conditions
// (missing entity, bad ownership, duplicate key, bad credential) are part
// of the contract surface and always map onto one of these sentinels;
// only store failures propagate unexplained.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrInvalidInput      = errors.New("invalid input")
)

// storeErr lifts store-level sentinels into the service taxonomy.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrDuplicate):
		return ErrDuplicate
	default:
		return err
	}
}
