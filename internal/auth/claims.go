package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are display-only fields pulled from the bearer token. The token
// is never verified client-side; the server is the authority, so these
// must not gate anything beyond what to print.
type Claims struct {
	Subject string
	Email   string
	Roles   []string
}

// PeekClaims decodes the token payload without verifying its signature.
func PeekClaims(token string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	claims := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if rawRoles, ok := mapClaims["roles"].([]any); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				claims.Roles = append(claims.Roles, role)
			}
		}
	}
	return claims, nil
}
