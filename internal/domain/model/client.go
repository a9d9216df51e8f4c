package model

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/civicid/oidc-provider/internal/errors"
)

// Client is a registered relying party. Records are created and updated
// through the protocol engine's registration flow; this core only reads them.
type Client struct {
	ID            ClientID
	Name          string
	GrantTypes    []string
	RedirectURIs  []string
	ResponseTypes []string
	Scope         string
	IssuedAt      time.Time
}

// Validate checks the invariants a stored client must satisfy.
func (c Client) Validate() error {
	if c.ID.IsZero() {
		return errors.Format("client id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.Format("client name is required")
	}
	if len(c.RedirectURIs) == 0 {
		return errors.Format("at least one redirect URI is required")
	}
	for _, u := range c.RedirectURIs {
		if err := ValidateRedirectURI(u); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRedirectURI accepts absolute http(s) URLs whose host is a
// registrable domain (an eTLD+1 or deeper) or localhost for development
// clients. Bare effective TLDs and IPs with userinfo tricks are rejected.
func ValidateRedirectURI(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrapf(err, errors.KindFormat, "invalid redirect URI %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Formatf("redirect URI %q must use http or https", raw)
	}
	if u.User != nil {
		return errors.Formatf("redirect URI %q must not carry credentials", raw)
	}
	host := u.Hostname()
	if host == "" {
		return errors.Formatf("redirect URI %q has no host", raw)
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return nil
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(host); err != nil {
		return errors.Wrapf(err, errors.KindFormat, "redirect URI host %q is not a registrable domain", host)
	}
	return nil
}
