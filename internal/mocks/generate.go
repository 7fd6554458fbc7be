// Package mocks provides mock implementations for testing the onboarding client.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the outbound ports. The mocks are generated using go:generate directives.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	api := mocks.NewMockAuthAPI(ctrl)
//	api.EXPECT().Authenticate(gomock.Any(), "a@b.com", "pw").Return(result, nil)
package mocks

// Generate mocks for the session ports: the remote auth service and the
// navigation collaborator.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_ports_mock.go github.com/invokta/onboarding/internal/ports AuthAPI,Navigator

// Generate mocks for the business-setup ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=business_ports_mock.go github.com/invokta/onboarding/internal/ports BusinessAPI,PincodeDirectory,GeoLocator
