package main

import (
	"errors"
	"flag"
	"os"

	"github.com/invokta/onboarding/internal/domain/business"
)

func runBusinessAdd(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("business-add", flag.ContinueOnError)
	name := fs.String("name", "", "business name (required)")
	website := fs.String("website", "", "business website URL")
	gstin := fs.String("gstin", "", "GST identification number")
	pan := fs.String("pan", "", "PAN number")
	email := fs.String("email", "", "business email (required)")
	phone := fs.String("phone", "", "10-digit phone number (required)")
	addressLine := fs.String("address", "", "street address (required)")
	city := fs.String("city", "", "city (required)")
	state := fs.String("state", "", "state (required for countries with states)")
	pincode := fs.String("pincode", "", "postal code")
	country := fs.String("country", "", "country name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	countryName := *country
	if countryName == "" {
		prefill, err := ctx.Business.Prefill(ctx.Ctx)
		if err != nil {
			return err
		}
		countryName = prefill.Country
	}

	record, err := ctx.Business.Submit(ctx.Ctx, business.Details{
		BusinessName: *name,
		Website:      *website,
		GSTIN:        *gstin,
		PAN:          *pan,
		Email:        *email,
		Phone:        *phone,
		OfficeAddress: business.OfficeAddress{
			Email:       *email,
			Phone:       *phone,
			AddressLine: *addressLine,
			City:        *city,
			State:       *state,
			Pincode:     *pincode,
			Country:     countryName,
		},
	})
	if err != nil {
		return err
	}
	return writef(os.Stdout, "business created: %s (%s)\n", record.BusinessName, record.BusinessID)
}

func runPincode(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("pincode", flag.ContinueOnError)
	countryCode := fs.String("country", "ae", "two-letter country code")
	code := fs.String("code", "", "postal code to resolve (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *code == "" {
		return errors.New("pincode requires -code")
	}

	place, err := ctx.Business.LookupPincode(ctx.Ctx, *countryCode, *code)
	if err != nil {
		return err
	}
	if place == nil {
		return writef(os.Stdout, "no match for %s in %s\n", *code, *countryCode)
	}
	return writef(os.Stdout, "city: %s\nstate: %s\ncountry: %s\n", place.City, place.State, place.Country)
}
