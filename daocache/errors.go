package daocache

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Sentinels for errors.Is. Returned errors wrap them with a category, a text
// code and the store type as metadata.
var (
	ErrNotBound             = errors.New("record store not bound")
	ErrDomainNotBound       = errors.New("caching domain not bound")
	ErrInvalidCachingDomain = errors.New("invalid caching domain")
	ErrDomainAlreadyBound   = errors.New("caching domain already bound")
)

const (
	TextCodeNotBound             = "NOT_BOUND"
	TextCodeDomainNotBound       = "DOMAIN_NOT_BOUND"
	TextCodeInvalidCachingDomain = "INVALID_CACHING_DOMAIN"
	TextCodeDomainAlreadyBound   = "DOMAIN_ALREADY_BOUND"
)

func notBoundError(storeType string) error {
	return goerrors.Wrap(ErrNotBound, goerrors.CategoryOperation, "bind a record store before calling CRUD operations").
		WithTextCode(TextCodeNotBound).
		WithMetadata(map[string]any{"store_type": storeType})
}

func domainNotBoundError(storeType string) error {
	return goerrors.Wrap(ErrDomainNotBound, goerrors.CategoryOperation, "bind a key value store for this store type first").
		WithTextCode(TextCodeDomainNotBound).
		WithMetadata(map[string]any{"store_type": storeType})
}

func invalidDomainError(storeType, reason string) error {
	return goerrors.Wrap(ErrInvalidCachingDomain, goerrors.CategoryBadInput, reason).
		WithTextCode(TextCodeInvalidCachingDomain).
		WithMetadata(map[string]any{"store_type": storeType})
}

func domainAlreadyBoundError(storeType string) error {
	return goerrors.Wrap(ErrDomainAlreadyBound, goerrors.CategoryConflict, "use Replace or Reset to rebind").
		WithTextCode(TextCodeDomainAlreadyBound).
		WithMetadata(map[string]any{"store_type": storeType})
}
