package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action classifies a ledger entry.
type Action string

const (
	ActionInfo  Action = "INFO"
	ActionOrder Action = "ORDER"
	ActionError Action = "ERROR"
)

// Entry is one row of the trade ledger. Optional numeric fields stay nil when
// not applicable: zero is a valid price/quantity and must not stand in for
// "absent".
type Entry struct {
	Timestamp time.Time        `json:"timestamp"`
	Action    Action           `json:"action"`
	BuyPrice  *decimal.Decimal `json:"buy_price,omitempty"`
	SellPrice *decimal.Decimal `json:"sell_price,omitempty"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
	Profit    *decimal.Decimal `json:"profit,omitempty"`
	Message   string           `json:"message"`
}

// Info builds an informational entry.
func Info(message string) Entry {
	return Entry{Timestamp: time.Now(), Action: ActionInfo, Message: message}
}

// Error builds an error entry.
func Error(message string) Entry {
	return Entry{Timestamp: time.Now(), Action: ActionError, Message: message}
}

// Order builds an order entry.
func Order(message string) Entry {
	return Entry{Timestamp: time.Now(), Action: ActionOrder, Message: message}
}

// WithBuyPrice sets the buy price field.
func (e Entry) WithBuyPrice(v decimal.Decimal) Entry {
	e.BuyPrice = &v
	return e
}

// WithSellPrice sets the sell price field.
func (e Entry) WithSellPrice(v decimal.Decimal) Entry {
	e.SellPrice = &v
	return e
}

// WithQuantity sets the quantity field.
func (e Entry) WithQuantity(v decimal.Decimal) Entry {
	e.Quantity = &v
	return e
}

// WithProfit sets the profit field.
func (e Entry) WithProfit(v decimal.Decimal) Entry {
	e.Profit = &v
	return e
}
