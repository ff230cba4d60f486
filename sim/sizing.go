package sim

import "fmt"

// Sizing decides order quantities from an account snapshot. Returning false
// skips the signal entirely; the executor still enforces the cash and
// position constraints on whatever quantity is returned.
type Sizing interface {
	Name() string
	BuyQuantity(acct Account, price float64) (float64, bool)
	SellQuantity(acct Account, price float64) (float64, bool)
}

// AllIn invests all available cash on BUY and liquidates the whole position
// on SELL.
type AllIn struct{}

func (AllIn) Name() string { return "all-in" }

func (AllIn) BuyQuantity(acct Account, price float64) (float64, bool) {
	if price <= 0 || acct.Cash <= 0 {
		return 0, false
	}
	return acct.Cash / price, true
}

func (AllIn) SellQuantity(acct Account, price float64) (float64, bool) {
	if acct.Quantity <= 0 {
		return 0, false
	}
	return acct.Quantity, true
}

// FixedFractional sizes each BUY to a fixed fraction of initial capital and
// stops adding exposure once deployed capital reaches MaxExposure. SELLs
// close exactly the most recently opened lot.
type FixedFractional struct {
	LimitPct    float64 // fraction of initial capital per BUY
	MaxExposure float64 // cap on deployed capital (initial - cash)
}

func (f FixedFractional) Name() string { return "fixed-fractional" }

func (f FixedFractional) BuyQuantity(acct Account, price float64) (float64, bool) {
	if price <= 0 {
		return 0, false
	}
	deployed := acct.InitialCapital - acct.Cash
	if deployed >= f.MaxExposure {
		return 0, false
	}
	return f.LimitPct * acct.InitialCapital / price, true
}

func (f FixedFractional) SellQuantity(acct Account, price float64) (float64, bool) {
	if len(acct.OpenLots) == 0 {
		return 0, false
	}
	return acct.OpenLots[len(acct.OpenLots)-1].Quantity, true
}

// SizingByName builds a sizing policy from its config name.
func SizingByName(name string, limitPct, maxExposure float64) (Sizing, error) {
	switch name {
	case "all-in", "allin", "":
		return AllIn{}, nil
	case "fixed-fractional", "fixed":
		return FixedFractional{LimitPct: limitPct, MaxExposure: maxExposure}, nil
	default:
		return nil, fmt.Errorf("unknown sizing policy %q (supported: all-in, fixed-fractional)", name)
	}
}
