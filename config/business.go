package config

import "time"

// BusinessConfig groups business-setup lookup configuration.
type BusinessConfig struct {
	// PincodeBaseURL is the postal-code directory endpoint.
	PincodeBaseURL string `env:"BUSINESS_PINCODE_BASE_URL" envDefault:"https://api.zippopotam.us"`

	// GeoBaseURL is the IP geolocation endpoint.
	GeoBaseURL string `env:"BUSINESS_GEO_BASE_URL" envDefault:"https://ipapi.co"`

	// LookupTimeout bounds each lookup call.
	LookupTimeout time.Duration `env:"BUSINESS_LOOKUP_TIMEOUT" envDefault:"10s"`

	// DefaultCountry is used when geolocation fails or detects an
	// unsupported country.
	DefaultCountry string `env:"BUSINESS_DEFAULT_COUNTRY" envDefault:"United Arab Emirates"`
}
