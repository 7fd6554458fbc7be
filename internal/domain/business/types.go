package business

// Package business contains domain-level types for the business-setup flow:
// the details submitted to the backend, the address auto-filled from a
// postal-code lookup, and the validation rules the form enforces.

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// OfficeAddress is the address block of a business submission. State is
// omitted for countries without states.
type OfficeAddress struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	Pincode     string `json:"pincode,omitempty"`
	Country     string `json:"country"`
}

// Details is the payload of the add-business endpoint. BusinessID is empty
// on submission; the backend generates it.
type Details struct {
	BusinessID    string        `json:"businessId"`
	BusinessName  string        `json:"businessName"`
	Website       string        `json:"website,omitempty"`
	GSTIN         string        `json:"gstin,omitempty"`
	PAN           string        `json:"pan,omitempty"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	OfficeAddress OfficeAddress `json:"officeAddress"`
}

// Record is the backend's response to a successful business submission.
type Record struct {
	BusinessID   string `json:"businessId"`
	BusinessName string `json:"businessName"`
}

// Place is a resolved postal-code location used to auto-fill address fields.
type Place struct {
	City    string
	State   string
	Country string
}

// Validate checks the submission rules the onboarding form enforces. The
// state requirement depends on whether the country has states.
func (d *Details) Validate() error {
	var errs []error

	if strings.TrimSpace(d.BusinessName) == "" {
		errs = append(errs, errors.New("business name is required"))
	}
	if strings.TrimSpace(d.OfficeAddress.Email) == "" {
		errs = append(errs, errors.New("email is required"))
	} else if !strings.Contains(d.OfficeAddress.Email, "@") {
		errs = append(errs, errors.New("invalid email"))
	}
	if !phonePattern.MatchString(d.OfficeAddress.Phone) {
		errs = append(errs, errors.New("phone must be 10 digits"))
	}
	if strings.TrimSpace(d.OfficeAddress.AddressLine) == "" {
		errs = append(errs, errors.New("address is required"))
	}
	if strings.TrimSpace(d.OfficeAddress.City) == "" {
		errs = append(errs, errors.New("city is required"))
	}
	if strings.TrimSpace(d.OfficeAddress.Country) == "" {
		errs = append(errs, errors.New("country is required"))
	} else if HasStates(d.OfficeAddress.Country) && strings.TrimSpace(d.OfficeAddress.State) == "" {
		errs = append(errs, errors.New("state is required"))
	}
	if d.Website != "" {
		if err := validateWebsite(d.Website); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// validateWebsite requires a parseable http(s) URL whose host resolves to a
// registrable domain under a known public suffix.
func validateWebsite(website string) error {
	u, err := url.Parse(website)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("invalid URL format")
	}
	host := u.Hostname()
	if _, err := publicsuffix.EffectiveTLDPlusOne(host); err != nil {
		return fmt.Errorf("website domain %q not registrable: %w", host, err)
	}
	return nil
}
