// Package mocks provides generated mock implementations for the service
// contracts in internal/ports.
//
// Mocks are generated with go.uber.org/mock (gomock) and committed so tests
// build without a codegen step. To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	grants := mocks.NewMockGrantService(ctrl)
//	grants.EXPECT().FindBy(gomock.Any(), gomock.Any()).Return(nil, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=client_service_mock.go github.com/civicid/oidc-provider/internal/ports ClientService

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=grant_service_mock.go github.com/civicid/oidc-provider/internal/ports GrantService

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=interaction_service_mock.go github.com/civicid/oidc-provider/internal/ports InteractionService

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_service_mock.go github.com/civicid/oidc-provider/internal/ports SessionService

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=identity_service_mock.go github.com/civicid/oidc-provider/internal/ports IdentityService
