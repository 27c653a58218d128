// Package ownership holds the rules shared by every owner-scoped resource:
// record ids are only meaningful together with their owner, and names are
// unique per owner.
package ownership

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/storage/postgres"
)

// NameLookup reports whether another record of the owner already uses name.
// excludeID is the record being renamed, or "" on create.
type NameLookup interface {
	ExistsByName(ctx context.Context, ownerID, name, excludeID string) (bool, error)
}

// ParseID normalizes a path id. A malformed id can never match a record, so
// it is answered exactly like a record owned by someone else.
func ParseID(id, notFoundMsg string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", apperr.NotFound(notFoundMsg)
	}
	return parsed.String(), nil
}

// EnsureUniqueName is the pre-check half of the duplicate guard. The unique
// index on (owner_id, name) stays the arbiter; see TranslateUnique.
func EnsureUniqueName(ctx context.Context, lookup NameLookup, ownerID, name, excludeID, duplicateMsg string) error {
	exists, err := lookup.ExistsByName(ctx, ownerID, name, excludeID)
	if err != nil {
		return apperr.Unexpected("duplicate name lookup", err)
	}
	if exists {
		return apperr.DuplicateName(duplicateMsg)
	}
	return nil
}

// TranslateUnique maps a unique-constraint violation that slipped past the
// pre-check onto the same DuplicateName error.
func TranslateUnique(err error, operation, duplicateMsg string) error {
	if err == nil {
		return nil
	}
	if postgres.IsUniqueViolation(err) {
		return apperr.DuplicateName(duplicateMsg)
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Unexpected(operation, err)
}

// SameName reports whether a rename keeps the stored name, in which case the
// duplicate check is skipped.
func SameName(stored, incoming string) bool {
	return strings.TrimSpace(stored) == strings.TrimSpace(incoming)
}
