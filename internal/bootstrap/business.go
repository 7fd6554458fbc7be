package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/invokta/onboarding/config"
	"github.com/invokta/onboarding/internal/adapters/authapi"
	"github.com/invokta/onboarding/internal/adapters/ipapi"
	"github.com/invokta/onboarding/internal/adapters/zippopotam"
	"github.com/invokta/onboarding/internal/ports"
	"github.com/invokta/onboarding/internal/service"
)

// BusinessDeps contains configuration for building the business service.
type BusinessDeps struct {
	Config    config.AppConfig
	Store     ports.CredentialStore
	Navigator ports.Navigator
	Logger    *slog.Logger
}

// BuildBusinessService wires the business-setup service from configuration.
func BuildBusinessService(deps BusinessDeps) (*service.BusinessService, error) {
	api, err := authapi.NewClient(authapi.ClientConfig{
		BaseURL: deps.Config.Auth.BaseURL,
		Timeout: deps.Config.Auth.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build business client: %w", err)
	}

	return service.NewBusinessService(service.BusinessServiceOptions{
		API: api,
		Pincodes: zippopotam.NewClient(zippopotam.ClientConfig{
			BaseURL: deps.Config.Business.PincodeBaseURL,
			Timeout: deps.Config.Business.LookupTimeout,
		}),
		Geo: ipapi.NewClient(ipapi.ClientConfig{
			BaseURL: deps.Config.Business.GeoBaseURL,
			Timeout: deps.Config.Business.LookupTimeout,
		}),
		Store:          deps.Store,
		Navigator:      deps.Navigator,
		Logger:         deps.Logger,
		DefaultCountry: deps.Config.Business.DefaultCountry,
	}), nil
}
