// Package auth turns a bearer credential into an identity context and
// makes the allow/deny decision for one invocation.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by the identity provider's tokens.
// Subject and Email identify the caller; Roles and Permissions drive the
// authorization decision.
type TokenClaims struct {
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}
