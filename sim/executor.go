// Package sim executes trade signals against a simulated cash account. The
// executor is the only writer of the trade ledger and equity curve; each run
// gets its own instance since cash and position are run-local mutable state.
package sim

import (
	"log/slog"
	"time"

	"github.com/rustyeddy/backsim/pkg/id"
	"github.com/rustyeddy/backsim/strategies"
)

// All-in sizing computes quantity as cash/price, so the repurchase cost can
// exceed cash by a rounding ulp. Tolerate that much and clamp at zero.
const costEpsilon = 1e-9

// TradeRecord is one accepted trade in the append-only ledger.
type TradeRecord struct {
	ID           string
	Time         time.Time
	Action       strategies.Action
	Price        float64
	Quantity     float64
	CashAfter    float64
	CapitalAfter float64
}

// Lot is one accepted BUY's quantity, tracked until closed by a SELL.
type Lot struct {
	Time     time.Time
	Price    float64
	Quantity float64
}

// Account is a read-only snapshot of executor state handed to sizing
// policies.
type Account struct {
	InitialCapital float64
	Cash           float64
	Quantity       float64
	OpenLots       []Lot
}

// Executor owns the mutable cash/position pair for one run. Derived capital
// is cash + quantity * last trade price. Cash and quantity never go
// negative; signals that would violate either constraint are rejected, not
// errors.
type Executor struct {
	initialCapital float64
	cash           float64
	quantity       float64
	lastPrice      float64

	lots         []Lot
	trades       []TradeRecord
	equity       []float64
	tradeReturns []float64

	sizing Sizing
	log    *slog.Logger
}

// NewExecutor seeds the equity curve with the initial capital. A nil logger
// falls back to slog.Default().
func NewExecutor(initialCapital float64, sizing Sizing, log *slog.Logger) *Executor {
	if log == nil {
		log = slog.Default()
	}
	return &Executor{
		initialCapital: initialCapital,
		cash:           initialCapital,
		equity:         []float64{initialCapital},
		sizing:         sizing,
		log:            log,
	}
}

func (x *Executor) Cash() float64           { return x.cash }
func (x *Executor) Quantity() float64       { return x.quantity }
func (x *Executor) InitialCapital() float64 { return x.initialCapital }

// Capital is cash plus the position marked at the last trade price.
func (x *Executor) Capital() float64 {
	return x.cash + x.quantity*x.lastPrice
}

// Trades returns the ledger in execution order.
func (x *Executor) Trades() []TradeRecord { return x.trades }

// EquityCurve returns the capital values: the initial capital followed by
// one value per accepted trade.
func (x *Executor) EquityCurve() []float64 { return x.equity }

// TradeReturns returns per-closed-trade fractional returns, one per
// accepted SELL, computed against the weighted entry price of the lots the
// SELL consumed.
func (x *Executor) TradeReturns() []float64 { return x.tradeReturns }

// OpenLots returns the LIFO stack of open lots, oldest first.
func (x *Executor) OpenLots() []Lot { return x.lots }

func (x *Executor) account() Account {
	return Account{
		InitialCapital: x.initialCapital,
		Cash:           x.cash,
		Quantity:       x.quantity,
		OpenLots:       x.lots,
	}
}

// HandleSignal sizes and applies one signal. It reports whether a trade was
// executed; rejected signals are dropped after logging, never retried.
func (x *Executor) HandleSignal(sig strategies.Signal) bool {
	var qty float64
	var ok bool

	switch sig.Action {
	case strategies.Buy:
		qty, ok = x.sizing.BuyQuantity(x.account(), sig.Price)
		if ok {
			ok = x.Buy(sig.Time, sig.Price, qty)
		}
	case strategies.Sell:
		qty, ok = x.sizing.SellQuantity(x.account(), sig.Price)
		if ok {
			ok = x.Sell(sig.Time, sig.Price, qty)
		}
	default:
		ok = false
	}

	if !ok {
		x.log.Info("trade rejected",
			"strategy", sig.Strategy,
			"action", string(sig.Action),
			"price", sig.Price,
			"cash", x.cash,
			"quantity", x.quantity,
		)
	}
	return ok
}

// Buy purchases qty at price, rejecting the order when the cost exceeds
// available cash.
func (x *Executor) Buy(at time.Time, price, qty float64) bool {
	if price <= 0 || qty <= 0 {
		return false
	}
	cost := price * qty
	if cost > x.cash+costEpsilon*x.initialCapital {
		return false
	}

	x.cash -= cost
	if x.cash < 0 {
		x.cash = 0
	}
	x.quantity += qty
	x.lastPrice = price
	x.lots = append(x.lots, Lot{Time: at, Price: price, Quantity: qty})
	x.record(at, strategies.Buy, price, qty)
	return true
}

// Sell disposes qty at price, rejecting the order when the position is
// smaller than qty. Lots are closed last-opened first; the realized return
// against the weighted entry of the consumed lots is recorded.
func (x *Executor) Sell(at time.Time, price, qty float64) bool {
	if price <= 0 || qty <= 0 {
		return false
	}
	if qty > x.quantity+costEpsilon*x.initialCapital {
		return false
	}
	if qty > x.quantity {
		qty = x.quantity
	}

	entry := x.consumeLots(qty)
	if entry > 0 {
		x.tradeReturns = append(x.tradeReturns, (price-entry)/entry)
	}

	x.cash += price * qty
	x.quantity -= qty
	if x.quantity < 0 {
		x.quantity = 0
	}
	x.lastPrice = price
	x.record(at, strategies.Sell, price, qty)
	return true
}

// consumeLots pops quantity off the top of the lot stack and returns the
// weighted average entry price of what was consumed.
func (x *Executor) consumeLots(qty float64) float64 {
	remaining := qty
	weighted := 0.0
	consumed := 0.0

	for remaining > 0 && len(x.lots) > 0 {
		top := &x.lots[len(x.lots)-1]
		take := top.Quantity
		if take > remaining {
			take = remaining
		}
		weighted += top.Price * take
		consumed += take
		remaining -= take
		top.Quantity -= take
		if top.Quantity <= 0 {
			x.lots = x.lots[:len(x.lots)-1]
		}
	}

	if consumed == 0 {
		return 0
	}
	return weighted / consumed
}

func (x *Executor) record(at time.Time, action strategies.Action, price, qty float64) {
	capital := x.Capital()
	x.trades = append(x.trades, TradeRecord{
		ID:           id.New(),
		Time:         at,
		Action:       action,
		Price:        price,
		Quantity:     qty,
		CashAfter:    x.cash,
		CapitalAfter: capital,
	})
	x.equity = append(x.equity, capital)

	x.log.Info("trade accepted",
		"action", string(action),
		"price", price,
		"quantity", qty,
		"cash", x.cash,
		"capital", capital,
	)
}
