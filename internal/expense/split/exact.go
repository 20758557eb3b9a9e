package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Khanalpratyush/splittwise/pkg/money"
)

// ExactStrategy uses caller-supplied amounts verbatim. The payer's implicit
// share is whatever remains of the total, which must not be negative.
type ExactStrategy struct{}

// Type returns the split type identifier.
func (s *ExactStrategy) Type() Type {
	return TypeExact
}

// Validate checks that every participant has a non-negative amount and that
// the amounts leave a non-negative share for the payer.
func (s *ExactStrategy) Validate(total decimal.Decimal, payerID int64, participants []Participant) error {
	if err := validateCommon(total, payerID, participants); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, p := range participants {
		if p.Amount == nil {
			return newValidationError(CodeMissingAmount, fmt.Sprintf("participant %d has no amount", p.UserID))
		}
		if p.Amount.IsNegative() {
			return newValidationError(CodeInvalidAmount, fmt.Sprintf("participant %d has a negative amount", p.UserID))
		}
		sum = sum.Add(money.RoundCents(*p.Amount))
	}

	if sum.GreaterThan(total) {
		return newMismatchError(CodeAmountMismatch,
			"participant amounts exceed the total amount", total, sum)
	}
	return nil
}

// Allocate returns the supplied amounts rounded to the cent. The payer keeps
// total - sum(amounts).
func (s *ExactStrategy) Allocate(total decimal.Decimal, payerID int64, participants []Participant) (*Result, error) {
	if err := s.Validate(total, payerID, participants); err != nil {
		return nil, err
	}

	allocations := make([]Allocation, len(participants))
	sum := decimal.Zero
	for i, p := range participants {
		amount := money.RoundCents(*p.Amount)
		allocations[i] = Allocation{UserID: p.UserID, Amount: amount}
		sum = sum.Add(amount)
	}

	return &Result{Allocations: allocations, PayerShare: total.Sub(sum)}, nil
}
