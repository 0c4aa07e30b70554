package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// ActionType tags the state transition a UserAction asks for.
type ActionType string

const (
	ActionDelete         ActionType = "Delete"
	ActionUpdateUserInfo ActionType = "UpdateUserInfo"
	ActionUpdateConfig   ActionType = "UpdateConfig"
)

// AllActionTypes lists every action tag in declaration order.
var AllActionTypes = []ActionType{
	ActionDelete,
	ActionUpdateUserInfo,
	ActionUpdateConfig,
}

var (
	ErrUnknownActionType = errors.New("unknown action type")
	ErrUnhandledAction   = errors.New("no handler for action")
)

// IsValid reports whether t is one of the declared action tags.
func (t ActionType) IsValid() bool {
	for i := range AllActionTypes {
		if t == AllActionTypes[i] {
			return true
		}
	}
	return false
}

func (t ActionType) String() string {
	return string(t)
}

// ParseActionType accepts a wire tag such as "UpdateConfig".
func ParseActionType(s string) (ActionType, error) {
	t := ActionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownActionType, s)
	}
	return t, nil
}

func (t ActionType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, string(t))
	}
	return []byte(t), nil
}

func (t *ActionType) UnmarshalText(text []byte) error {
	parsed, err := ParseActionType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ActionPayload is implemented only by the payload types of this package.
// Each payload belongs to exactly one ActionType.
type ActionPayload interface {
	actionType() ActionType
	Validate() error
}

// DeletePayload identifies what a Delete action removes.
type DeletePayload struct {
	ID string `json:"id" binding:"required"`
}

func (*DeletePayload) actionType() ActionType { return ActionDelete }

func (p *DeletePayload) Validate() error {
	if p == nil {
		return nil
	}
	return validateStruct("delete", p)
}

// UserInfoPatch is a partial UserInfo; nil fields are left unchanged.
type UserInfoPatch struct {
	UserID          *string `json:"userId,omitempty"`
	DisplayName     *string `json:"displayName,omitempty"`
	LoginExpiration *int64  `json:"loginExpiration,omitempty" binding:"omitempty,gte=0"`
	IsLogin         *bool   `json:"isLogin,omitempty"`
}

func (*UserInfoPatch) actionType() ActionType { return ActionUpdateUserInfo }

func (p *UserInfoPatch) Validate() error {
	if p == nil {
		return nil
	}
	if err := validateStruct("userInfo patch", p); err != nil {
		return err
	}
	if p.IsLogin != nil && *p.IsLogin && p.UserID != nil && *p.UserID == "" {
		return invalidf("userInfo patch: login requires a userId")
	}
	return nil
}

// LLMConfigPatch is a partial LLMConfigState; nil fields are left unchanged.
type LLMConfigPatch struct {
	SelectedLLM          *string  `json:"selectedLLM,omitempty"`
	SelectedDataPro      *string  `json:"selectedDataPro,omitempty"`
	IntentChecked        *bool    `json:"intentChecked,omitempty"`
	ComplexChecked       *bool    `json:"complexChecked,omitempty"`
	AnswerInsightChecked *bool    `json:"answerInsightChecked,omitempty"`
	ContextWindow        *bool    `json:"contextWindow,omitempty"`
	ModelSuggestChecked  *bool    `json:"modelSuggestChecked,omitempty"`
	Temperature          *float64 `json:"temperature,omitempty" binding:"omitempty,gte=0"`
	TopP                 *float64 `json:"topP,omitempty" binding:"omitempty,gte=0,lte=1"`
	TopK                 *int     `json:"topK,omitempty" binding:"omitempty,gte=0"`
	MaxLength            *int     `json:"maxLength,omitempty" binding:"omitempty,gte=0"`
}

func (*LLMConfigPatch) actionType() ActionType { return ActionUpdateConfig }

func (p *LLMConfigPatch) Validate() error {
	if p == nil {
		return nil
	}
	if err := validateStruct("queryConfig patch", p); err != nil {
		return err
	}
	if p.Temperature != nil && !finite(*p.Temperature) {
		return invalidf("queryConfig patch: temperature %v is not finite", *p.Temperature)
	}
	if p.TopP != nil && !finite(*p.TopP) {
		return invalidf("queryConfig patch: topP %v is not finite", *p.TopP)
	}
	return nil
}

// UserAction is a tagged union: the tag decides the payload type, and the
// payload may be absent. Build values with the New*Action constructors.
type UserAction struct {
	kind  ActionType
	state ActionPayload
}

func NewDeleteAction(p *DeletePayload) UserAction {
	if p == nil {
		return UserAction{kind: ActionDelete}
	}
	return UserAction{kind: ActionDelete, state: p}
}

func NewUpdateUserInfoAction(p *UserInfoPatch) UserAction {
	if p == nil {
		return UserAction{kind: ActionUpdateUserInfo}
	}
	return UserAction{kind: ActionUpdateUserInfo, state: p}
}

func NewUpdateConfigAction(p *LLMConfigPatch) UserAction {
	if p == nil {
		return UserAction{kind: ActionUpdateConfig}
	}
	return UserAction{kind: ActionUpdateConfig, state: p}
}

func (a UserAction) Type() ActionType { return a.kind }

// Payload returns the payload, or nil when the action carries none.
func (a UserAction) Payload() ActionPayload { return a.state }

func (a UserAction) HasPayload() bool { return a.state != nil }

func (a UserAction) AsDelete() (*DeletePayload, bool) {
	p, ok := a.state.(*DeletePayload)
	return p, ok
}

func (a UserAction) AsUserInfoPatch() (*UserInfoPatch, bool) {
	p, ok := a.state.(*UserInfoPatch)
	return p, ok
}

func (a UserAction) AsConfigPatch() (*LLMConfigPatch, bool) {
	p, ok := a.state.(*LLMConfigPatch)
	return p, ok
}

func (a UserAction) Validate() error {
	if !a.kind.IsValid() {
		return fmt.Errorf("%w: action: %w %q", ErrInvalid, ErrUnknownActionType, string(a.kind))
	}
	if a.state == nil {
		return nil
	}
	if a.state.actionType() != a.kind {
		return invalidf("action %s: payload belongs to %s", a.kind, a.state.actionType())
	}
	if err := a.state.Validate(); err != nil {
		return fmt.Errorf("action %s: %w", a.kind, err)
	}
	return nil
}

// ActionHandlers has one handler per action type. Handlers receive a nil
// payload when the action carries none.
type ActionHandlers struct {
	Delete         func(*DeletePayload) error
	UpdateUserInfo func(*UserInfoPatch) error
	UpdateConfig   func(*LLMConfigPatch) error
}

// Match calls the handler for the action's tag. A missing handler is an
// error wrapping ErrUnhandledAction.
func (a UserAction) Match(h ActionHandlers) error {
	switch a.kind {
	case ActionDelete:
		if h.Delete == nil {
			return fmt.Errorf("%w: %s", ErrUnhandledAction, a.kind)
		}
		p, _ := a.AsDelete()
		return h.Delete(p)
	case ActionUpdateUserInfo:
		if h.UpdateUserInfo == nil {
			return fmt.Errorf("%w: %s", ErrUnhandledAction, a.kind)
		}
		p, _ := a.AsUserInfoPatch()
		return h.UpdateUserInfo(p)
	case ActionUpdateConfig:
		if h.UpdateConfig == nil {
			return fmt.Errorf("%w: %s", ErrUnhandledAction, a.kind)
		}
		p, _ := a.AsConfigPatch()
		return h.UpdateConfig(p)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownActionType, string(a.kind))
	}
}

type actionWire struct {
	Type  ActionType      `json:"type"`
	State json.RawMessage `json:"state,omitempty"`
}

func (a UserAction) MarshalJSON() ([]byte, error) {
	w := actionWire{Type: a.kind}
	if a.state != nil {
		raw, err := json.Marshal(a.state)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", a.kind, err)
		}
		w.State = raw
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the payload into the type owned by the tag. Keys are
// matched exactly: anything other than "type" and "state" at the top level, or
// a payload key the tag's type does not declare, is rejected.
func (a *UserAction) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: action: %v", ErrInvalid, err)
	}
	if err := exactKeys("action", fields, "type", "state"); err != nil {
		return err
	}

	var kind ActionType
	if raw, ok := fields["type"]; ok {
		if err := json.Unmarshal(raw, &kind); err != nil {
			return fmt.Errorf("%w: action: %w", ErrInvalid, err)
		}
	}
	if kind == "" {
		return fmt.Errorf("%w: action: type is required", ErrInvalid)
	}

	decoded := UserAction{kind: kind}
	state := bytes.TrimSpace(fields["state"])
	if len(state) > 0 && !bytes.Equal(state, []byte("null")) {
		var p ActionPayload
		switch kind {
		case ActionDelete:
			p = &DeletePayload{}
		case ActionUpdateUserInfo:
			p = &UserInfoPatch{}
		case ActionUpdateConfig:
			p = &LLMConfigPatch{}
		}
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(state, &keys); err != nil {
			return fmt.Errorf("%w: %s payload: %v", ErrInvalid, kind, err)
		}
		if err := exactKeys(kind.String()+" payload", keys, jsonNames(p)...); err != nil {
			return err
		}
		dec := json.NewDecoder(bytes.NewReader(state))
		dec.DisallowUnknownFields()
		if err := dec.Decode(p); err != nil {
			return fmt.Errorf("%w: %s payload: %v", ErrInvalid, kind, err)
		}
		decoded.state = p
	}
	*a = decoded
	return nil
}

// exactKeys rejects object keys outside allowed. encoding/json folds case when
// matching struct fields, so "TYPE" would otherwise bind to "type".
func exactKeys(name string, fields map[string]json.RawMessage, allowed ...string) error {
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if !slices.Contains(allowed, k) {
			return invalidf("%s: unknown field %q", name, k)
		}
	}
	return nil
}

// jsonNames lists the wire names of the struct v points to.
func jsonNames(v any) []string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names = append(names, name)
	}
	return names
}
