// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrStrategyNotSupported = errors.New("strategy not supported")
	ErrCalendarNotMappable  = errors.New("calendar spread cannot be expressed as single-expiry legs")
	ErrEmptyChain           = errors.New("option chain is empty")
	ErrInsufficientChain    = errors.New("insufficient market data to build strategies")
	ErrVolatilityHalted     = errors.New("volatility too high, strategy construction halted")
	ErrChainUnavailable     = errors.New("option chain unavailable")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrSymbolNotFound       = errors.New("symbol not found")
	ErrConfigInvalid        = errors.New("invalid configuration")
	ErrDataNotFound         = errors.New("data not found")
	ErrDatabaseError        = errors.New("database error")
)

// ValidationError reports a strategy parameter that failed validation.
type ValidationError struct {
	Strategy string
	Field    string
	Value    interface{}
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s (%v): %s", e.Strategy, e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(strategy, field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Strategy: strategy,
		Field:    field,
		Value:    value,
		Message:  message,
	}
}

// ChainError represents an error fetching or decoding an option chain.
type ChainError struct {
	Symbol  string
	Message string
	Err     error
}

func (e *ChainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chain error [%s]: %s: %v", e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("chain error [%s]: %s", e.Symbol, e.Message)
}

func (e *ChainError) Unwrap() error {
	return e.Err
}

// NewChainError creates a new ChainError.
func NewChainError(symbol, message string, err error) *ChainError {
	return &ChainError{
		Symbol:  symbol,
		Message: message,
		Err:     err,
	}
}

// SelectionError represents a strike-selection failure.
type SelectionError struct {
	Symbol  string
	Stage   string
	Message string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("selection error [%s] %s: %s", e.Symbol, e.Stage, e.Message)
}

// NewSelectionError creates a new SelectionError.
func NewSelectionError(symbol, stage, message string) *SelectionError {
	return &SelectionError{
		Symbol:  symbol,
		Stage:   stage,
		Message: message,
	}
}

// RiskError represents a business-rule risk gate rejection, such as the
// VIX safety halt.
type RiskError struct {
	Rule    string
	Current float64
	Limit   float64
	Message string
}

func (e *RiskError) Error() string {
	return fmt.Sprintf("risk violation [%s]: %s (current: %.2f, limit: %.2f)", e.Rule, e.Message, e.Current, e.Limit)
}

func (e *RiskError) Unwrap() error {
	if e.Rule == "vix" {
		return ErrVolatilityHalted
	}
	return nil
}

// NewRiskError creates a new RiskError.
func NewRiskError(rule string, current, limit float64, message string) *RiskError {
	return &RiskError{
		Rule:    rule,
		Current: current,
		Limit:   limit,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
