package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Khanalpratyush/splittwise/pkg/money"
)

// Type identifies a split strategy.
type Type string

const (
	TypeEqual      Type = "EQUAL"
	TypeExact      Type = "EXACT"
	TypePercentage Type = "PERCENTAGE"
)

// Participant is one friend the expense is shared with. The payer is never a
// participant; their share is implicit. Amount is set for EXACT splits,
// Percentage for PERCENTAGE splits.
type Participant struct {
	UserID     int64
	Amount     *decimal.Decimal
	Percentage *decimal.Decimal
}

// Allocation is one participant's finalized obligation.
type Allocation struct {
	UserID int64
	Amount decimal.Decimal
}

// Result is a validated allocation. PayerShare + sum of Allocations equals
// the total amount exactly, to the cent.
type Result struct {
	Allocations []Allocation
	PayerShare  decimal.Decimal
}

// Strategy is the interface all split strategies implement.
type Strategy interface {
	// Allocate computes each participant's share of the total.
	Allocate(total decimal.Decimal, payerID int64, participants []Participant) (*Result, error)

	// Type returns the strategy's type identifier.
	Type() Type

	// Validate checks the inputs without computing shares.
	Validate(total decimal.Decimal, payerID int64, participants []Participant) error
}

// Factory creates split strategies by type.
type Factory struct{}

// NewFactory returns a new strategy factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given type.
func (f *Factory) Create(t Type) (Strategy, error) {
	switch t {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypeExact:
		return &ExactStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", t)
	}
}

// CreateFromString creates a strategy from its wire representation.
func (f *Factory) CreateFromString(t string) (Strategy, error) {
	return f.Create(Type(t))
}

// Validation error codes.
const (
	CodeInvalidAmount        = "INVALID_AMOUNT"
	CodeNoParticipants       = "NO_PARTICIPANTS"
	CodeDuplicateParticipant = "DUPLICATE_PARTICIPANT"
	CodePayerIsParticipant   = "PAYER_IS_PARTICIPANT"
	CodeMissingAmount        = "MISSING_AMOUNT"
	CodeMissingPercentage    = "MISSING_PERCENTAGE"
	CodePercentageOutOfRange = "PERCENTAGE_OUT_OF_RANGE"
	CodeAmountMismatch       = "AMOUNT_MISMATCH"
	CodePercentageMismatch   = "PERCENTAGE_MISMATCH"
)

// ValidationError describes why an allocation was rejected. Expected and
// Actual are set for reconciliation mismatches so callers can show the user
// what the numbers should have been.
type ValidationError struct {
	Code     string
	Message  string
	Expected string
	Actual   string
}

func (e *ValidationError) Error() string {
	if e.Expected != "" || e.Actual != "" {
		return fmt.Sprintf("%s (expected %s, got %s)", e.Message, e.Expected, e.Actual)
	}
	return e.Message
}

func newValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

func newMismatchError(code, message string, expected, actual decimal.Decimal) *ValidationError {
	return &ValidationError{
		Code:     code,
		Message:  message,
		Expected: money.Format(expected),
		Actual:   money.Format(actual),
	}
}

// validateCommon enforces the rules shared by every strategy: a positive
// total, at least one participant, no duplicates, and the payer excluded.
func validateCommon(total decimal.Decimal, payerID int64, participants []Participant) error {
	if !total.IsPositive() {
		return newValidationError(CodeInvalidAmount, "total amount must be greater than zero")
	}
	if len(participants) == 0 {
		return newValidationError(CodeNoParticipants, "at least one participant is required")
	}

	seen := make(map[int64]bool, len(participants))
	for _, p := range participants {
		if p.UserID == payerID {
			return newValidationError(CodePayerIsParticipant, "the payer cannot be listed as a participant")
		}
		if seen[p.UserID] {
			return newValidationError(CodeDuplicateParticipant, fmt.Sprintf("participant %d appears more than once", p.UserID))
		}
		seen[p.UserID] = true
	}
	return nil
}
