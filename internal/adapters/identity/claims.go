package identity

// Package identity provides adapters for the external identity source: a
// proprietary profile API, a standard OIDC userinfo endpoint, and a static
// provider for development.

import (
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// ClaimMapping selects Identity fields out of the upstream profile document
// via JMESPath expressions. Deployments with differently shaped upstreams
// override the defaults through configuration.
type ClaimMapping struct {
	ID         string
	FiscalCode string
	GivenName  string
	FamilyName string
}

// DefaultClaimMapping matches the profile document of the reference identity
// source.
func DefaultClaimMapping() ClaimMapping {
	return ClaimMapping{
		ID:         "fiscal_code",
		FiscalCode: "fiscal_code",
		GivenName:  "name.given_name",
		FamilyName: "name.family_name",
	}
}

// Validate compiles every expression of the mapping.
func (m ClaimMapping) Validate(eval JMESPathEvaluator) error {
	for name, expr := range map[string]string{
		"id":          m.ID,
		"fiscal_code": m.FiscalCode,
		"given_name":  m.GivenName,
		"family_name": m.FamilyName,
	} {
		if expr == "" {
			return fmt.Errorf("claim mapping %s is required", name)
		}
		if err := eval.Validate(expr); err != nil {
			return fmt.Errorf("claim mapping %s: %w", name, err)
		}
	}
	return nil
}

// mapIdentity extracts an Identity from a decoded profile document.
func mapIdentity(eval JMESPathEvaluator, mapping ClaimMapping, doc any) (model.Identity, error) {
	id, err := evalString(eval, mapping.ID, doc)
	if err != nil {
		return model.Identity{}, err
	}
	fiscalCode, err := evalString(eval, mapping.FiscalCode, doc)
	if err != nil {
		return model.Identity{}, err
	}
	givenName, err := evalString(eval, mapping.GivenName, doc)
	if err != nil {
		return model.Identity{}, err
	}
	familyName, err := evalString(eval, mapping.FamilyName, doc)
	if err != nil {
		return model.Identity{}, err
	}

	identityID, err := model.ParseIdentityID(id)
	if err != nil {
		return model.Identity{}, err
	}
	return model.Identity{
		ID:         identityID,
		FiscalCode: fiscalCode,
		GivenName:  givenName,
		FamilyName: familyName,
	}, nil
}

func evalString(eval JMESPathEvaluator, expr string, doc any) (string, error) {
	v, err := eval.Evaluate(expr, doc)
	if err != nil {
		return "", errors.Wrapf(err, errors.KindFormat, "evaluate claim %q", expr)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errors.Formatf("claim %q missing or not a string", expr)
	}
	return s, nil
}
