package split

import (
	"github.com/shopspring/decimal"

	"github.com/Khanalpratyush/splittwise/pkg/money"
)

// EqualStrategy divides the total evenly across the payer and all
// participants. The payer bears one share implicitly; the rounding remainder
// always lands on the last participant in input order, so the same input
// yields the same allocation every time.
type EqualStrategy struct{}

// Type returns the split type identifier.
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Validate checks the inputs for an equal split.
func (s *EqualStrategy) Validate(total decimal.Decimal, payerID int64, participants []Participant) error {
	return validateCommon(total, payerID, participants)
}

// Allocate gives every person, payer included, total/(participants+1) rounded
// to the cent. The last participant absorbs the rounding leftover so the
// shares reconstruct the total exactly.
func (s *EqualStrategy) Allocate(total decimal.Decimal, payerID int64, participants []Participant) (*Result, error) {
	if err := s.Validate(total, payerID, participants); err != nil {
		return nil, err
	}

	people := decimal.NewFromInt(int64(len(participants) + 1))
	share := money.RoundCents(total.Div(people))

	allocations := make([]Allocation, len(participants))
	distributed := decimal.Zero
	for i := 0; i < len(participants)-1; i++ {
		allocations[i] = Allocation{UserID: participants[i].UserID, Amount: share}
		distributed = distributed.Add(share)
	}

	last := total.Sub(share).Sub(distributed)
	if last.IsNegative() {
		return nil, newValidationError(CodeInvalidAmount, "amount is too small to split evenly among the participants")
	}
	allocations[len(allocations)-1] = Allocation{
		UserID: participants[len(participants)-1].UserID,
		Amount: last,
	}

	return &Result{Allocations: allocations, PayerShare: share}, nil
}
