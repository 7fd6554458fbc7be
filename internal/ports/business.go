package ports

import (
	"context"

	"github.com/invokta/onboarding/internal/domain/business"
)

// BusinessAPI submits business details to the backend.
type BusinessAPI interface {
	AddBusiness(ctx context.Context, details business.Details) (*business.Record, error)
}

// PincodeDirectory resolves a postal code to a place within a country.
// Implementations return ErrNotFound when the directory has no entry.
type PincodeDirectory interface {
	Lookup(ctx context.Context, countryCode, pincode string) (*business.Place, error)
}

// GeoLocator detects the caller's country from its network location.
type GeoLocator interface {
	// Locate returns the detected country display name and ISO code.
	Locate(ctx context.Context) (country, code string, err error)
}
