package valueobjects

import "fmt"

// Money represents a monetary amount in the smallest currency unit
// (e.g. cents: 1990 = 19.90 USD). Currency codes are lowercase ISO-4217;
// the set of accepted currencies is open and driven by the plan catalog.
type Money struct {
	amountInCents int64
	currency      string
}

func NewMoney(amountInCents int64, currency string) Money {
	return Money{
		amountInCents: amountInCents,
		currency:      currency,
	}
}

func (m Money) AmountInCents() int64 {
	return m.amountInCents
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsPositive() bool {
	return m.amountInCents > 0
}

func (m Money) Equals(other Money) bool {
	return m.amountInCents == other.amountInCents && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amountInCents, m.currency)
}
