package models

import (
	"errors"
	"fmt"
	"strings"
)

// AlertType classifies the tone of an alert shown by the front-end.
type AlertType string

const (
	AlertError   AlertType = "error"
	AlertWarning AlertType = "warning"
	AlertInfo    AlertType = "info"
	AlertSuccess AlertType = "success"
)

// AllAlertTypes is the closed set of alert types. The name table returned by
// CommonAlertType is built from this list.
var AllAlertTypes = []AlertType{
	AlertError,
	AlertWarning,
	AlertInfo,
	AlertSuccess,
}

var ErrUnknownAlertType = errors.New("unknown alert type")

var commonAlertType = func() map[string]AlertType {
	table := make(map[string]AlertType, len(AllAlertTypes))
	for _, at := range AllAlertTypes {
		table[at.Name()] = at
	}
	return table
}()

// CommonAlertType returns the name to value table, e.g. "Success" -> "success".
// The map is a copy.
func CommonAlertType() map[string]AlertType {
	out := make(map[string]AlertType, len(commonAlertType))
	for k, v := range commonAlertType {
		out[k] = v
	}
	return out
}

// IsValid returns true if the alert type is recognized.
func (at AlertType) IsValid() bool {
	for i := range AllAlertTypes {
		if at == AllAlertTypes[i] {
			return true
		}
	}
	return false
}

// Name returns the key of the alert type in the name table, or "" when at is
// not one of the declared types.
func (at AlertType) Name() string {
	if !at.IsValid() {
		return ""
	}
	s := string(at)
	return strings.ToUpper(s[:1]) + s[1:]
}

func (at AlertType) String() string {
	return string(at)
}

// ParseAlertType accepts a wire value such as "warning".
func ParseAlertType(s string) (AlertType, error) {
	at := AlertType(s)
	if !at.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlertType, s)
	}
	return at, nil
}

// AlertTypeByName accepts a table key such as "Warning".
func AlertTypeByName(name string) (AlertType, error) {
	at, ok := commonAlertType[name]
	if !ok {
		return "", fmt.Errorf("%w: no alert type named %q", ErrUnknownAlertType, name)
	}
	return at, nil
}

// MarshalText fails with ErrUnknownAlertType for any value outside the closed
// set, including the zero value.
func (at AlertType) MarshalText() ([]byte, error) {
	if !at.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlertType, string(at))
	}
	return []byte(at), nil
}

func (at *AlertType) UnmarshalText(text []byte) error {
	parsed, err := ParseAlertType(string(text))
	if err != nil {
		return err
	}
	*at = parsed
	return nil
}

// CommonAlertProps is the payload of a transient alert. A zero value does not
// marshal: its empty AlertType is rejected by MarshalText.
type CommonAlertProps struct {
	AlertTxt  string    `json:"alertTxt" binding:"required"`
	AlertType AlertType `json:"alertType" binding:"required"`
}

// NewAlert builds alert props; call Validate before showing them.
func NewAlert(alertType AlertType, text string) CommonAlertProps {
	return CommonAlertProps{AlertTxt: text, AlertType: alertType}
}

func (a CommonAlertProps) Validate() error {
	if err := validateStruct("alert", a); err != nil {
		return err
	}
	if !a.AlertType.IsValid() {
		return fmt.Errorf("%w: alert: %w %q", ErrInvalid, ErrUnknownAlertType, string(a.AlertType))
	}
	return nil
}
