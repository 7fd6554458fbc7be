package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/invokta/onboarding/internal/domain/business"
	"github.com/invokta/onboarding/internal/domain/session"
	"github.com/invokta/onboarding/internal/ports"
	"golang.org/x/sync/errgroup"
)

// minPincodeLengths is the per-country minimum length before a lookup is
// attempted; shorter input is still being typed.
var minPincodeLengths = map[string]int{
	"us": 5,
	"ca": 6,
	"gb": 5,
	"au": 4,
	"ae": 5,
}

const defaultMinPincodeLength = 5

// uaePostcodes is a static fallback for UAE postcodes the public directory
// does not cover.
var uaePostcodes = map[string]string{
	"00000": "Abu Dhabi",
	"11111": "Dubai",
	"22222": "Sharjah",
	"33333": "Ajman",
	"44444": "Umm Al Quwain",
	"55555": "Ras Al Khaimah",
	"66666": "Fujairah",
}

// BusinessServiceOptions groups dependencies for BusinessService.
type BusinessServiceOptions struct {
	API       ports.BusinessAPI
	Pincodes  ports.PincodeDirectory
	Geo       ports.GeoLocator
	Store     ports.CredentialStore
	Navigator ports.Navigator
	Logger    *slog.Logger

	// DefaultCountry is used when geolocation fails or detects a country
	// outside the reference table.
	DefaultCountry string
}

// BusinessService orchestrates the business-setup flow: prefilling the form,
// resolving postal codes to address fields, and submitting the details.
type BusinessService struct {
	api            ports.BusinessAPI
	pincodes       ports.PincodeDirectory
	geo            ports.GeoLocator
	store          ports.CredentialStore
	nav            ports.Navigator
	logger         *slog.Logger
	defaultCountry string
}

// NewBusinessService constructs a BusinessService.
func NewBusinessService(opts BusinessServiceOptions) *BusinessService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	defaultCountry := opts.DefaultCountry
	if defaultCountry == "" {
		defaultCountry = "United Arab Emirates"
	}

	return &BusinessService{
		api:            opts.API,
		pincodes:       opts.Pincodes,
		geo:            opts.Geo,
		store:          opts.Store,
		nav:            opts.Navigator,
		logger:         logger,
		defaultCountry: defaultCountry,
	}
}

// Prefill is the form's starting state: the detected country and, when the
// user already completed setup, the stored record (in which case the caller
// should route to the dashboard instead of the form).
type Prefill struct {
	Country        string
	CountryCode    string
	ExistingRecord *business.Record
}

// Prefill detects the user's country and loads any stored business record,
// concurrently. Geolocation failures degrade to the default country.
func (s *BusinessService) Prefill(ctx context.Context) (*Prefill, error) {
	result := &Prefill{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		country, code := s.detectCountry(gctx)
		result.Country = country
		result.CountryCode = code
		return nil
	})
	g.Go(func() error {
		record, err := s.storedRecord(gctx)
		if err != nil {
			return err
		}
		result.ExistingRecord = record
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if result.ExistingRecord != nil {
		// Setup already done; the form guard sends the user onward.
		s.nav.Navigate(session.RouteDashboard)
	}
	return result, nil
}

// LookupPincode resolves a postal code to address fields for the given
// country code. Codes too short for the country, unknown codes, and
// directory outages all return (nil, nil): the pincode field is optional and
// never blocks the form.
func (s *BusinessService) LookupPincode(ctx context.Context, countryCode, pincode string) (*business.Place, error) {
	countryCode = strings.ToLower(strings.TrimSpace(countryCode))
	if countryCode == "" {
		countryCode = "ae"
	}
	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return nil, nil
	}

	minLength, ok := minPincodeLengths[countryCode]
	if !ok {
		minLength = defaultMinPincodeLength
	}
	if len(pincode) < minLength {
		return nil, nil
	}

	// CA/GB/AE codes are written with spaces the directory rejects.
	formatted := pincode
	switch countryCode {
	case "ca", "gb", "ae":
		formatted = strings.ReplaceAll(pincode, " ", "")
	}

	if countryCode == "ae" {
		if city, ok := uaePostcodes[formatted]; ok {
			return &business.Place{City: city, Country: "United Arab Emirates"}, nil
		}
	}

	place, err := s.pincodes.Lookup(ctx, countryCode, formatted)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.WarnContext(ctx, "pincode lookup failed", "country", countryCode, "error", err)
		return nil, nil
	}

	return s.normalizePlace(place), nil
}

// normalizePlace maps directory names onto the reference table so the form
// only ever sees known country and state values.
func (s *BusinessService) normalizePlace(place *business.Place) *business.Place {
	normalized := &business.Place{City: place.City}

	country, ok := business.MatchCountry(place.Country)
	if !ok {
		return normalized
	}
	normalized.Country = country

	if state, ok := business.MatchState(country, place.State); ok {
		normalized.State = state
	}
	return normalized
}

// Submit validates and submits business details, persists the returned
// record, and routes to the dashboard.
func (s *BusinessService) Submit(ctx context.Context, details business.Details) (*business.Record, error) {
	// State is only part of the payload for countries that have states.
	if !business.HasStates(details.OfficeAddress.Country) {
		details.OfficeAddress.State = ""
	}
	if err := details.Validate(); err != nil {
		return nil, fmt.Errorf("validate business details: %w", err)
	}

	record, err := s.api.AddBusiness(ctx, details)
	if err != nil {
		return nil, fmt.Errorf("add business: %w", err)
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode business record: %w", err)
	}
	if err := s.store.Set(ctx, session.KeyBusinessDetails, string(encoded)); err != nil {
		s.logger.WarnContext(ctx, "persist business record", "error", err)
	}

	s.nav.Navigate(session.RouteDashboard)
	return record, nil
}

func (s *BusinessService) detectCountry(ctx context.Context) (string, string) {
	name, code, err := s.geo.Locate(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "geolocation failed, using default country", "error", err)
		return s.fallbackCountry()
	}

	if country, ok := business.MatchCountry(name); ok {
		if cc, ok := business.CountryCode(country); ok {
			return country, cc
		}
	}
	if country, ok := business.CountryByCode(code); ok {
		cc, _ := business.CountryCode(country)
		return country, cc
	}

	return s.fallbackCountry()
}

func (s *BusinessService) fallbackCountry() (string, string) {
	code, _ := business.CountryCode(s.defaultCountry)
	return s.defaultCountry, code
}

func (s *BusinessService) storedRecord(ctx context.Context) (*business.Record, error) {
	raw, err := s.store.Get(ctx, session.KeyBusinessDetails)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read stored business record: %w", err)
	}

	var record business.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.WarnContext(ctx, "stored business record unparseable, ignoring", "error", err)
		return nil, nil
	}
	return &record, nil
}
