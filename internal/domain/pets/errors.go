package pets

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("pet not found")
	ErrQuery              = errors.New("query failed")
	ErrUpload             = errors.New("avatar upload failed")
	ErrVariantMismatch    = errors.New("avatar variants do not share a base url")
	ErrPayment            = errors.New("payment failed")
	ErrPaymentUnavailable = errors.New("payment gateway not configured")
)

// ValidationError lista los campos que no cumplen el esquema (campo => motivo).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
