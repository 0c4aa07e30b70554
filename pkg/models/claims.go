package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// displayNameClaims are tried in order; the subject is the fallback.
var displayNameClaims = []string{"name", "preferred_username", "cognito:username", "email"}

// UserInfoFromClaims builds the identity for an ID token the auth flow has
// already verified. The identity is logged in while the token is unexpired.
func UserInfoFromClaims(claims jwt.MapClaims, now time.Time) (UserInfo, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return UserInfo{}, fmt.Errorf("read subject: %w", err)
	}
	if strings.TrimSpace(sub) == "" {
		return UserInfo{}, invalidf("claims: subject is required")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return UserInfo{}, fmt.Errorf("read expiration: %w", err)
	}
	if exp == nil {
		return UserInfo{}, invalidf("claims: exp is required")
	}

	info := UserInfo{
		UserID:          sub,
		DisplayName:     sub,
		LoginExpiration: exp.Unix(),
	}
	for _, key := range displayNameClaims {
		if v, ok := claims[key].(string); ok && strings.TrimSpace(v) != "" {
			info.DisplayName = v
			break
		}
	}
	info.IsLogin = !info.Expired(now)
	return info, nil
}
