package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Ayash-Bera/nlq-report/pkg/models"
	"github.com/sirupsen/logrus"
)

// Kind names the document shape being checked.
type Kind string

const (
	KindState  Kind = "state"
	KindAction Kind = "action"
	KindAlert  Kind = "alert"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindState, KindAction, KindAlert:
		return k, nil
	}
	return "", fmt.Errorf("unknown document kind %q (want state, action or alert)", s)
}

type Status string

const (
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusInvalid Status = "invalid"
)

var statusRank = map[Status]int{StatusValid: 0, StatusWarning: 1, StatusInvalid: 2}

// DocumentReport is the outcome of checking one document.
type DocumentReport struct {
	Source    string   `json:"source"`
	Kind      Kind     `json:"kind"`
	Status    Status   `json:"status"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
	CheckedAt string   `json:"checked_at"`
}

// OverallReport carries the worst status across all documents.
type OverallReport struct {
	Status    Status           `json:"status"`
	Documents []DocumentReport `json:"documents"`
	Duration  string           `json:"duration"`
}

// Checker decodes front-end state documents and validates them.
type Checker struct {
	logger *logrus.Logger
	now    func() time.Time
}

func NewChecker(logger *logrus.Logger) *Checker {
	return &Checker{
		logger: logger,
		now:    time.Now,
	}
}

// Check decodes one document of the given kind from r.
func (c *Checker) Check(source string, kind Kind, r io.Reader) DocumentReport {
	now := c.now()
	report := DocumentReport{
		Source:    source,
		Kind:      kind,
		Status:    StatusValid,
		CheckedAt: now.Format(time.RFC3339),
	}

	var err error
	switch kind {
	case KindState:
		var state models.UserState
		if err = decodeStrict(r, &state); err == nil {
			err = state.Validate()
			report.Warnings = stateWarnings(state, now)
		}
	case KindAction:
		var action models.UserAction
		if err = decodeStrict(r, &action); err == nil {
			err = action.Validate()
			report.Warnings = actionWarnings(action)
		}
	case KindAlert:
		var alert models.CommonAlertProps
		if err = decodeStrict(r, &alert); err == nil {
			err = alert.Validate()
		}
	default:
		_, err = ParseKind(string(kind))
	}

	if err != nil {
		report.Status = StatusInvalid
		report.Errors = append(report.Errors, err.Error())
		c.logger.WithError(err).WithFields(logrus.Fields{
			"source": source,
			"kind":   kind,
		}).Error("Document check failed")
		return report
	}

	if len(report.Warnings) > 0 {
		report.Status = StatusWarning
		c.logger.WithFields(logrus.Fields{
			"source":   source,
			"kind":     kind,
			"warnings": len(report.Warnings),
		}).Warn("Document has warnings")
		return report
	}

	c.logger.WithFields(logrus.Fields{
		"source": source,
		"kind":   kind,
	}).Debug("Document is valid")
	return report
}

// CheckFiles checks every file as a document of kind. Unreadable files are
// reported as invalid; the remaining files are still checked.
func (c *Checker) CheckFiles(ctx context.Context, kind Kind, paths []string) OverallReport {
	start := time.Now()
	overall := OverallReport{
		Status:    StatusValid,
		Documents: make([]DocumentReport, 0, len(paths)),
	}

	for _, path := range paths {
		select {
		case <-ctx.Done():
			overall.Documents = append(overall.Documents, c.failed(path, kind, ctx.Err()))
			overall.Status = StatusInvalid
			overall.Duration = time.Since(start).String()
			return overall
		default:
		}

		report := c.checkFile(path, kind)
		overall.Documents = append(overall.Documents, report)
		if statusRank[report.Status] > statusRank[overall.Status] {
			overall.Status = report.Status
		}
	}

	overall.Duration = time.Since(start).String()
	c.logger.WithFields(logrus.Fields{
		"documents": len(overall.Documents),
		"status":    overall.Status,
		"duration":  overall.Duration,
	}).Info("Document check completed")
	return overall
}

func (c *Checker) checkFile(path string, kind Kind) DocumentReport {
	f, err := os.Open(path)
	if err != nil {
		return c.failed(path, kind, fmt.Errorf("open document: %w", err))
	}
	defer f.Close()
	return c.Check(path, kind, f)
}

func (c *Checker) failed(source string, kind Kind, err error) DocumentReport {
	c.logger.WithError(err).WithField("source", source).Error("Document could not be read")
	return DocumentReport{
		Source:    source,
		Kind:      kind,
		Status:    StatusInvalid,
		Errors:    []string{err.Error()},
		CheckedAt: c.now().Format(time.RFC3339),
	}
}

func decodeStrict(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("decode document: trailing data after first value")
	}
	return nil
}

func stateWarnings(state models.UserState, now time.Time) []string {
	var warnings []string
	if w := modelWarning(state.QueryConfig.SelectedLLM); w != "" {
		warnings = append(warnings, w)
	}
	if state.UserInfo.IsLogin && state.UserInfo.Expired(now) {
		warnings = append(warnings, fmt.Sprintf("userInfo: login expired at %s",
			time.Unix(state.UserInfo.LoginExpiration, 0).UTC().Format(time.RFC3339)))
	}
	return warnings
}

func actionWarnings(action models.UserAction) []string {
	patch, ok := action.AsConfigPatch()
	if !ok || patch == nil || patch.SelectedLLM == nil {
		return nil
	}
	if w := modelWarning(*patch.SelectedLLM); w != "" {
		return []string{w}
	}
	return nil
}

func modelWarning(id string) string {
	if id == "" || models.IsSupportedLLM(id) {
		return ""
	}
	return fmt.Sprintf("queryConfig: selectedLLM %q has no prompt templates", id)
}
