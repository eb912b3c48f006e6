package normalize

import (
	"github.com/devillers/checkin-sub000/internal/domain"
)

// resolveDeposit turns operations.deposit (possibly absent) into the tagged
// fixed/range union. Fixed defaults the amount to 0; range requires both
// bounds and min ≤ max. The method defaults to a card imprint unless a bank
// transfer is explicitly asked for.
func resolveDeposit(raw map[string]any) (domain.Deposit, error) {
	d := domain.Deposit{Type: domain.DepositFixed, Method: domain.MethodEmpreinte}

	if trimmedString(raw["type"]) == string(domain.DepositRange) {
		d.Type = domain.DepositRange
	}
	if trimmedString(raw["method"]) == string(domain.MethodVirement) {
		d.Method = domain.MethodVirement
	}

	switch d.Type {
	case domain.DepositFixed:
		zero := 0.0
		d.Amount = boundedFloat(raw["amount"], floatOpts{Min: 0, Fallback: &zero})
	case domain.DepositRange:
		d.Min = boundedFloat(raw["min"], floatOpts{Min: 0, Fallback: nil})
		d.Max = boundedFloat(raw["max"], floatOpts{Min: 0, Fallback: nil})
		if d.Min == nil || d.Max == nil {
			return domain.Deposit{}, failf("deposit range requires both a minimum and a maximum amount")
		}
		if *d.Min > *d.Max {
			return domain.Deposit{}, failf("deposit minimum cannot exceed the maximum")
		}
	}

	return d, nil
}
