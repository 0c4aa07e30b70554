package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullState() UserState {
	return UserState{
		UserInfo: UserInfo{
			UserID:          "7c2f-user",
			DisplayName:     "Ada Lovelace",
			LoginExpiration: 1767225600,
			IsLogin:         true,
		},
		QueryConfig: LLMConfigState{
			SelectedLLM:          "anthropic.claude-3-haiku-20240307-v1:0",
			SelectedDataPro:      "shopping_demo",
			IntentChecked:        true,
			ComplexChecked:       true,
			AnswerInsightChecked: true,
			ContextWindow:        true,
			ModelSuggestChecked:  true,
			Temperature:          0.3,
			TopP:                 0.9,
			TopK:                 200,
			MaxLength:            4096,
		},
	}
}

func TestUserInfo_Validate(t *testing.T) {
	tests := []struct {
		name    string
		info    UserInfo
		wantErr bool
	}{
		{name: "logged out", info: LoggedOutUser()},
		{name: "logged in", info: UserInfo{UserID: "u1", LoginExpiration: 100, IsLogin: true}},
		{name: "logged out keeps id", info: UserInfo{UserID: "u1"}},
		{name: "logged in without id", info: UserInfo{IsLogin: true, LoginExpiration: 100}, wantErr: true},
		{name: "negative expiration", info: UserInfo{UserID: "u1", LoginExpiration: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserInfo_Expiry(t *testing.T) {
	now := time.Unix(1000, 0)

	live := UserInfo{UserID: "u1", LoginExpiration: 2000, IsLogin: true}
	assert.False(t, live.Expired(now))
	assert.True(t, live.Active(now))

	stale := UserInfo{UserID: "u1", LoginExpiration: 1000, IsLogin: true}
	assert.True(t, stale.Expired(now))
	assert.False(t, stale.Active(now))

	noExpiry := UserInfo{UserID: "u1", IsLogin: true}
	assert.False(t, noExpiry.Expired(now))

	assert.False(t, LoggedOutUser().Active(now))
}

func TestLLMConfigState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LLMConfigState)
		wantErr bool
	}{
		{name: "default", mutate: func(*LLMConfigState) {}},
		{name: "top p bounds", mutate: func(c *LLMConfigState) { c.TopP = 0 }},
		{name: "negative temperature", mutate: func(c *LLMConfigState) { c.Temperature = -0.1 }, wantErr: true},
		{name: "nan temperature", mutate: func(c *LLMConfigState) { c.Temperature = math.NaN() }, wantErr: true},
		{name: "infinite temperature", mutate: func(c *LLMConfigState) { c.Temperature = math.Inf(1) }, wantErr: true},
		{name: "top p above one", mutate: func(c *LLMConfigState) { c.TopP = 1.5 }, wantErr: true},
		{name: "nan top p", mutate: func(c *LLMConfigState) { c.TopP = math.NaN() }, wantErr: true},
		{name: "negative top k", mutate: func(c *LLMConfigState) { c.TopK = -1 }, wantErr: true},
		{name: "negative max length", mutate: func(c *LLMConfigState) { c.MaxLength = -5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultLLMConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLLMConfigState_ZeroValueIsValid(t *testing.T) {
	assert.NoError(t, LLMConfigState{}.Validate())
}

func TestUserState_ValidIffBothPartsValid(t *testing.T) {
	goodInfo := UserInfo{UserID: "u1", LoginExpiration: 10, IsLogin: true}
	badInfo := UserInfo{IsLogin: true}
	goodCfg := DefaultLLMConfig()
	badCfg := DefaultLLMConfig()
	badCfg.TopP = 2

	tests := []struct {
		name  string
		info  UserInfo
		cfg   LLMConfigState
		valid bool
	}{
		{name: "both valid", info: goodInfo, cfg: goodCfg, valid: true},
		{name: "bad identity", info: badInfo, cfg: goodCfg},
		{name: "bad config", info: goodInfo, cfg: badCfg},
		{name: "both bad", info: badInfo, cfg: badCfg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := UserState{UserInfo: tt.info, QueryConfig: tt.cfg}
			err := state.Validate()

			partsValid := tt.info.Validate() == nil && tt.cfg.Validate() == nil
			assert.Equal(t, partsValid, err == nil)
			assert.Equal(t, tt.valid, err == nil)
			if err != nil {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestDefaultUserState(t *testing.T) {
	state := DefaultUserState(DefaultLLMConfig())
	assert.False(t, state.UserInfo.IsLogin)
	assert.Equal(t, DefaultModelID, state.QueryConfig.SelectedLLM)
	assert.NoError(t, state.Validate())
}

func TestUserState_JSONRoundTrip(t *testing.T) {
	states := map[string]UserState{
		"full":    fullState(),
		"minimal": {},
		"default": DefaultUserState(DefaultLLMConfig()),
	}

	for name, state := range states {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(state)
			require.NoError(t, err)

			var decoded UserState
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, state, decoded)
		})
	}
}

func TestUserState_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(fullState())
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Contains(t, raw["userInfo"], "userId")
	assert.Contains(t, raw["userInfo"], "displayName")
	assert.Contains(t, raw["userInfo"], "loginExpiration")
	assert.Contains(t, raw["userInfo"], "isLogin")
	for _, key := range []string{
		"selectedLLM", "selectedDataPro", "intentChecked", "complexChecked",
		"answerInsightChecked", "contextWindow", "modelSuggestChecked",
		"temperature", "topP", "topK", "maxLength",
	} {
		assert.Contains(t, raw["queryConfig"], key)
	}
}
