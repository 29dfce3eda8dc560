package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnknownOperatorID is recorded as PerformedByID when the caller has no
// authenticated identity. Provenance is never left empty.
var UnknownOperatorID = uuid.Max

// MaxQuantity bounds every quantity and balance. Both are stored as
// PostgreSQL INTEGER.
const MaxQuantity = math.MaxInt32

// QuantityInRange reports whether n fits the stored quantity range in
// either direction.
func QuantityInRange(n int) bool {
	return n >= -MaxQuantity && n <= MaxQuantity
}

// TransactionType is the kind of stock movement recorded in the ledger.
type TransactionType string

// TransactionType values.
const (
	TxPurchase   TransactionType = "PURCHASE"
	TxDispensed  TransactionType = "DISPENSED"
	TxAdjustment TransactionType = "ADJUSTMENT"
	TxReturn     TransactionType = "RETURN"
	TxExpired    TransactionType = "EXPIRED"
	TxDamaged    TransactionType = "DAMAGED"
	TxTransfer   TransactionType = "TRANSFER"
)

// TransactionTypes lists every valid TransactionType.
var TransactionTypes = []TransactionType{
	TxPurchase, TxDispensed, TxAdjustment, TxReturn, TxExpired, TxDamaged, TxTransfer,
}

// Effect classifies how a transaction type moves the balance.
type Effect int

// Effect values.
const (
	EffectUnknown Effect = iota
	// EffectInbound adds the absolute quantity.
	EffectInbound
	// EffectOutbound subtracts the absolute quantity.
	EffectOutbound
	// EffectBidirectional adds the signed quantity.
	EffectBidirectional
)

func (e Effect) String() string {
	switch e {
	case EffectInbound:
		return "INBOUND"
	case EffectOutbound:
		return "OUTBOUND"
	case EffectBidirectional:
		return "BIDIRECTIONAL"
	default:
		return "UNKNOWN"
	}
}

// Effect returns the balance effect class of t. A new TransactionType must be
// added here; unknown types classify as EffectUnknown and are rejected.
func (t TransactionType) Effect() Effect {
	switch t {
	case TxPurchase, TxReturn:
		return EffectInbound
	case TxDispensed, TxExpired, TxDamaged:
		return EffectOutbound
	case TxAdjustment, TxTransfer:
		return EffectBidirectional
	default:
		return EffectUnknown
	}
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t.Effect() != EffectUnknown
}

// Delta converts an entered quantity into the signed balance change for e.
func (e Effect) Delta(quantity int) int {
	switch e {
	case EffectInbound:
		return abs(quantity)
	case EffectOutbound:
		return -abs(quantity)
	case EffectBidirectional:
		return quantity
	default:
		return 0
	}
}

// Transaction is one immutable ledger record.
type Transaction struct {
	ID             uuid.UUID
	Seq            int64 // commit order within the whole ledger
	ItemID         uuid.UUID
	Type           TransactionType
	Quantity       int // as entered
	QuantityAfter  int // balance immediately after this record
	UnitCost       *decimal.Decimal
	PatientID      *uuid.UUID
	VisitID        *uuid.UUID
	PerformedByID  uuid.UUID
	Reference      string
	Notes          string
	IdempotencyKey string
	CreatedAt      time.Time
}

// Delta returns the signed change this record applied to the balance.
func (t *Transaction) Delta() int {
	return t.Type.Effect().Delta(t.Quantity)
}

// ApplyCommand is a request to record one stock movement.
type ApplyCommand struct {
	ItemID         uuid.UUID
	Type           TransactionType
	Quantity       int
	UnitCost       *decimal.Decimal
	PatientID      *uuid.UUID
	VisitID        *uuid.UUID
	PerformedByID  uuid.UUID
	Reference      string
	Notes          string
	IdempotencyKey string
}

// Operator returns the command's operator, substituting UnknownOperatorID when unset.
func (c ApplyCommand) Operator() uuid.UUID {
	if c.PerformedByID == uuid.Nil {
		return UnknownOperatorID
	}
	return c.PerformedByID
}

// SameRequest reports whether an existing record was produced by an equivalent
// command. Used to decide whether an idempotency key replay is legitimate.
func (c ApplyCommand) SameRequest(t *Transaction) bool {
	return t.ItemID == c.ItemID && t.Type == c.Type && t.Quantity == c.Quantity
}

// NewTransaction builds the ledger record for cmd with the given resulting balance.
func NewTransaction(cmd ApplyCommand, quantityAfter int) *Transaction {
	return &Transaction{
		ID:             uuid.New(),
		ItemID:         cmd.ItemID,
		Type:           cmd.Type,
		Quantity:       cmd.Quantity,
		QuantityAfter:  quantityAfter,
		UnitCost:       cmd.UnitCost,
		PatientID:      cmd.PatientID,
		VisitID:        cmd.VisitID,
		PerformedByID:  cmd.Operator(),
		Reference:      cmd.Reference,
		Notes:          cmd.Notes,
		IdempotencyKey: cmd.IdempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}
}

// ParseTransactionType parses s into a known TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
