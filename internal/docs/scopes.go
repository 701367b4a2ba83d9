package docs

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Scopes reference resource metadata. Unlike the guides it is rendered
// from the server's live scope list on every read.
const (
	ScopesSlug        = "scopes"
	ScopesTitle       = "OAuth2 Scopes Reference"
	ScopesDescription = "Reference for available OAuth2 scopes"
)

const scopesIntro = `# OAuth2 Scopes Reference

## Overview

Scopes define the level of access that a client application can request. The authorization server will only grant scopes that:
1. The client is allowed to request
2. The user has consented to (for user-facing flows)

## Available Scopes

`

const scopesOutro = "## OpenID Connect Scopes\n\n" +
	"The following scopes are part of OpenID Connect:\n\n" +
	"- **openid**: Required for OIDC authentication. Returns the `sub` claim.\n" +
	"- **profile**: Access to profile claims (`name`, `given_name`, `family_name`, `preferred_username`, `picture`, `locale`, `updated_at`)\n" +
	"- **email**: Access to email claims (`email`, `email_verified`)\n\n" +
	"## Requesting Scopes\n\n" +
	"Include scopes in the authorization request:\n\n" +
	"```\n/oauth2/authorize?\n  ...&\n  scope=openid%20profile%20email%20custom:scope\n```\n\n" +
	"Space-separated scopes will be URL-encoded.\n\n" +
	"## Scope Validation\n\n" +
	"1. Client must be registered with requested scopes\n" +
	"2. User must consent (unless consent is disabled for the client)\n" +
	"3. Granted scopes appear in:\n" +
	"   - Access token JWT claims\n" +
	"   - Token introspection response\n" +
	"   - UserInfo endpoint response\n\n" +
	"## Best Practices\n\n" +
	"1. **Request minimum required scopes**\n" +
	"2. **Use specific scopes** (e.g., `read:profile` instead of `admin`)\n" +
	"3. **Document your custom scopes** clearly\n" +
	"4. **Review granted scopes** in access tokens\n" +
	"5. **Validate scopes** on every API request\n"

// ScopesURI is the resource URI of the scopes reference.
func ScopesURI() string {
	return URIPrefix + ScopesSlug
}

// ScopesReference renders the markdown scopes reference from the
// server's scope list, in the order the server returned the entries.
// Entries without a scope name are skipped.
func ScopesReference(scopes []byte) string {
	var b strings.Builder

	b.WriteString(scopesIntro)

	gjson.ParseBytes(scopes).ForEach(func(_, s gjson.Result) bool {
		name := s.Get("scope").String()
		if name == "" {
			return true
		}

		b.WriteString("### `" + name + "`\n\n")

		if desc := s.Get("description").String(); desc != "" {
			b.WriteString(desc + "\n\n")
		}

		if s.Get("system").Bool() {
			b.WriteString("**System Scope**: Cannot be deleted\n\n")
		}

		b.WriteString("---\n\n")

		return true
	})

	b.WriteString(scopesOutro)

	return b.String()
}
