package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

// ProcessResult is the closed outcome variant of ProcessInteractionUseCase.
// Callers render UI only for CollectConsent and finish the protocol
// interaction directly for the other two.
type ProcessResult interface {
	isProcessResult()
}

// LoginResult reports a successful authentication for a not-yet-processed
// interaction.
type LoginResult struct {
	Identity model.Identity
}

// ConsentResult reports that an existing grant satisfies the interaction.
type ConsentResult struct {
	Grant model.Grant
}

// CollectConsent instructs the caller to render a consent prompt.
type CollectConsent struct {
	Client           model.Client
	InteractionID    model.InteractionID
	MissingScope     []string
	AllowRemembering bool
}

func (LoginResult) isProcessResult()    {}
func (ConsentResult) isProcessResult()  {}
func (CollectConsent) isProcessResult() {}

// ProcessInteractionUseCaseOptions groups dependencies for
// ProcessInteractionUseCase.
type ProcessInteractionUseCaseOptions struct {
	Interactions ports.InteractionService
	Clients      ports.ClientService
	Grants       ports.GrantService
	Authenticate *AuthenticateUseCase
	// EnableRememberGrant gates the remember-grant feature globally.
	EnableRememberGrant bool
	Logger              *slog.Logger
	// Now overrides the clock, useful for tests. Defaults to time.Now.
	Now func() time.Time
}

// ProcessInteractionUseCase decides the next step for a pending interaction:
// authenticate, reuse an existing grant, or collect fresh consent.
type ProcessInteractionUseCase struct {
	interactions  ports.InteractionService
	clients       ports.ClientService
	grants        ports.GrantService
	authenticate  *AuthenticateUseCase
	allowRemember bool
	logger        *slog.Logger
	now           func() time.Time
}

// NewProcessInteractionUseCase constructs a new ProcessInteractionUseCase.
func NewProcessInteractionUseCase(opts ProcessInteractionUseCaseOptions) *ProcessInteractionUseCase {
	if opts.Interactions == nil || opts.Clients == nil || opts.Grants == nil || opts.Authenticate == nil {
		panic("usecase: ProcessInteractionUseCase requires interactions, clients, grants, and authenticate")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &ProcessInteractionUseCase{
		interactions:  opts.Interactions,
		clients:       opts.Clients,
		grants:        opts.Grants,
		authenticate:  opts.Authenticate,
		allowRemember: opts.EnableRememberGrant,
		logger:        opts.Logger,
		now:           now,
	}
}

// Process runs the state machine for one interaction. tokenFn produces the
// current request's bearer token and is evaluated only on the
// pre-authentication branch.
//
// The pre-authentication branch does not mutate the interaction; persisting
// the login outcome belongs to the caller finishing the protocol-engine
// interaction.
func (u *ProcessInteractionUseCase) Process(
	ctx context.Context,
	id model.InteractionID,
	tokenFn func() string,
) (ProcessResult, error) {
	interaction, err := u.interactions.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if interaction == nil {
		return nil, errors.NotFound("Interaction not found")
	}

	if !interaction.Authenticated() {
		identity, err := u.authenticate.Authenticate(ctx, tokenFn())
		if err != nil {
			return nil, err
		}
		return LoginResult{Identity: identity}, nil
	}

	grant, err := findReusableGrant(ctx, u.grants, *interaction, u.now())
	if err != nil {
		return nil, err
	}
	if grant != nil {
		return ConsentResult{Grant: *grant}, nil
	}

	clientID, err := model.ParseClientID(interaction.Params.ClientID)
	if err != nil {
		return nil, err
	}
	client, err := u.clients.Find(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.NotFound("Client not found")
	}

	missing := interaction.Params.Scope
	if missing == "" {
		missing = client.Scope
	}
	return CollectConsent{
		Client:           *client,
		InteractionID:    interaction.ID,
		MissingScope:     model.SplitScope(missing),
		AllowRemembering: u.allowRemember,
	}, nil
}
