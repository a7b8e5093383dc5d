package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks the configuration. knownProviders lists the names accepted
// for the provider field. Every problem is reported, not just the first.
func (c Config) Validate(knownProviders []string) error {
	var errs ValidationErrors

	switch {
	case c.Provider == "" && c.Issuer == "":
		errs.Add("provider", "either provider or issuer is required")
	case c.Provider != "" && c.Issuer != "":
		errs.Add("issuer", "cannot be combined with provider", c.Issuer)
	case c.Provider != "" && !slices.Contains(knownProviders, c.Provider):
		errs.Add("provider", fmt.Sprintf("must be one of: %s", strings.Join(knownProviders, ", ")), c.Provider)
	case c.Issuer != "":
		if err := validateAbsoluteURL(c.Issuer); err != nil {
			errs.Add("issuer", err.Error(), c.Issuer)
		}
		allowed := []string{LifetimeStatic, LifetimeExpiring, LifetimeRefresh}
		if !slices.Contains(allowed, c.Lifetime) {
			errs.Add("lifetime", fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")), c.Lifetime)
		}
	}

	if strings.TrimSpace(c.ClientID) == "" {
		errs.Add("clientId", "is required")
	}

	if c.RedirectURI != "" {
		if err := validateAbsoluteURL(c.RedirectURI); err != nil {
			errs.Add("redirectUri", err.Error(), c.RedirectURI)
		}
	}

	if c.CallbackPort < 0 || c.CallbackPort > 65535 {
		errs.Add("callbackPort", "must be between 0 and 65535", c.CallbackPort)
	}

	if c.Timeout < 0 {
		errs.Add("timeout", "must not be negative", c.Timeout)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("is not a valid URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	return nil
}
