// Package validate implements the field-level checks run against request
// payloads before anything is written: required-field presence and the
// email format/uniqueness check.
//
// Rules are plain values. Each operation receives the rule list it needs
// explicitly; nothing is registered globally.
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule names a payload field. Label is the human name used in messages.
type Rule struct {
	Field string
	Label string
}

// Rules is evaluated in declaration order, so messages come out in the same
// order the fields are listed.
type Rules []Rule

// UserRules are the required fields for registering a user.
var UserRules = Rules{
	{Field: "firstName", Label: "first name"},
	{Field: "lastName", Label: "last name"},
	{Field: "emailAddress", Label: "email address"},
	{Field: "password", Label: "password"},
}

// CourseRules are the required fields for creating or replacing a course.
var CourseRules = Rules{
	{Field: "title", Label: "title"},
	{Field: "description", Label: "description"},
}

// CourseOptionalFields may be omitted or null, but must be text when sent.
var CourseOptionalFields = Rules{
	{Field: "estimatedTime", Label: "estimated time"},
	{Field: "materialsNeeded", Label: "materials needed"},
}

// Messages reported by the email check.
const (
	MsgEmailInUse   = "Email already in use"
	MsgEmailInvalid = "Not a valid E-mail address"
)

// emailPattern accepts a dot-separated local part (or a quoted one) and
// either a bracketed IPv4 literal or a domain with an alphabetic TLD.
var emailPattern = regexp.MustCompile(
	`^(([^<>()[\]\\.,;:\s@"]+(\.[^<>()[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`,
)

// EmailChecker is the lookup the email check needs from the user store.
type EmailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Validator wraps a go-playground validator configured with the custom
// "emailaddr" tag. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// RegisterValidation only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Missing returns a message for every rule whose field is absent, null or
// falsy: empty or whitespace-only strings, false and zero all count as missing.
func (val *Validator) Missing(p Payload, rules Rules) []string {
	var messages []string
	for _, rule := range rules {
		if !val.present(p[rule.Field]) {
			messages = append(messages, fmt.Sprintf("Please provide a value for %q", rule.Label))
		}
	}
	return messages
}

// NotText returns a message for every listed field that holds a JSON object
// or array. Every stored field is text.
func (val *Validator) NotText(p Payload, rules ...Rules) []string {
	var messages []string
	for _, rs := range rules {
		for _, rule := range rs {
			if !p.IsText(rule.Field) {
				messages = append(messages, fmt.Sprintf("Please provide text for %q", rule.Label))
			}
		}
	}
	return messages
}

// Check runs the presence rules over required, then the text check over
// required and optional. Presence messages come first.
func (val *Validator) Check(p Payload, required, optional Rules) []string {
	return append(val.Missing(p, required), val.NotText(p, required, optional)...)
}

func (val *Validator) present(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case string:
		value = strings.TrimSpace(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			value = f
		}
	}
	return val.v.Var(value, "required") == nil
}

// ValidEmail reports whether email matches the accepted address pattern.
func (val *Validator) ValidEmail(email string) bool {
	return val.v.Var(email, "emailaddr") == nil
}

// CheckEmail runs the email rule: an address already registered (ignoring
// case) is rejected first, then one that does not match the pattern. It
// returns "" when the email is acceptable. A non-nil error means the lookup
// itself failed and no verdict was reached.
func (val *Validator) CheckEmail(ctx context.Context, store EmailChecker, email string) (string, error) {
	inUse, err := store.EmailExists(ctx, strings.ToLower(email))
	if err != nil {
		return "", fmt.Errorf("validate: checking email: %w", err)
	}
	if inUse {
		return MsgEmailInUse, nil
	}
	if !val.ValidEmail(email) {
		return MsgEmailInvalid, nil
	}
	return "", nil
}
