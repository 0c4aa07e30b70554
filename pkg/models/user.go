package models

import (
	"fmt"
	"time"
)

// UserInfo is the session identity of the signed-in user. LoginExpiration is
// a Unix timestamp in seconds.
type UserInfo struct {
	UserID          string `json:"userId" binding:"required_if=IsLogin true"`
	DisplayName     string `json:"displayName"`
	LoginExpiration int64  `json:"loginExpiration" binding:"gte=0"`
	IsLogin         bool   `json:"isLogin"`
}

// LoggedOutUser returns the identity used before login and after logout.
func LoggedOutUser() UserInfo {
	return UserInfo{}
}

func (u UserInfo) Validate() error {
	return validateStruct("userInfo", u)
}

// Expired reports whether the login expiration has passed. An identity
// without an expiration never expires.
func (u UserInfo) Expired(now time.Time) bool {
	return u.LoginExpiration > 0 && now.Unix() >= u.LoginExpiration
}

// Active reports whether the identity is logged in and not expired.
func (u UserInfo) Active(now time.Time) bool {
	return u.IsLogin && !u.Expired(now)
}

// UserState is the front-end application state: who is logged in and how
// their queries are configured.
type UserState struct {
	UserInfo    UserInfo       `json:"userInfo"`
	QueryConfig LLMConfigState `json:"queryConfig"`
}

// DefaultUserState returns a logged-out state carrying cfg.
func DefaultUserState(cfg LLMConfigState) UserState {
	return UserState{
		UserInfo:    LoggedOutUser(),
		QueryConfig: cfg,
	}
}

// Validate reports an error unless both sub-records are valid.
func (s UserState) Validate() error {
	if err := s.UserInfo.Validate(); err != nil {
		return fmt.Errorf("userState: %w", err)
	}
	if err := s.QueryConfig.Validate(); err != nil {
		return fmt.Errorf("userState: %w", err)
	}
	return nil
}
