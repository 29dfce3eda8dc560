package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestTransactionType_Effect(t *testing.T) {
	tests := []struct {
		typ  TransactionType
		want Effect
	}{
		{TxPurchase, EffectInbound},
		{TxReturn, EffectInbound},
		{TxDispensed, EffectOutbound},
		{TxExpired, EffectOutbound},
		{TxDamaged, EffectOutbound},
		{TxAdjustment, EffectBidirectional},
		{TxTransfer, EffectBidirectional},
		{"SOLD", EffectUnknown},
		{"", EffectUnknown},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.Effect(); got != tt.want {
				t.Fatalf("Effect() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTransactionTypes_AllClassified(t *testing.T) {
	for _, typ := range TransactionTypes {
		if !typ.Valid() {
			t.Errorf("%s has no effect class", typ)
		}
	}
}

func TestEffect_Delta(t *testing.T) {
	tests := []struct {
		name   string
		effect Effect
		qty    int
		want   int
	}{
		{"inbound positive", EffectInbound, 5, 5},
		{"inbound negative entered", EffectInbound, -5, 5},
		{"outbound positive", EffectOutbound, 5, -5},
		{"outbound negative entered", EffectOutbound, -5, -5},
		{"bidirectional up", EffectBidirectional, 7, 7},
		{"bidirectional down", EffectBidirectional, -7, -7},
		{"unknown", EffectUnknown, 9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.effect.Delta(tt.qty); got != tt.want {
				t.Fatalf("Delta(%d) = %d, want %d", tt.qty, got, tt.want)
			}
		})
	}
}

func TestParseTransactionType(t *testing.T) {
	if typ, err := ParseTransactionType("DISPENSED"); err != nil || typ != TxDispensed {
		t.Fatalf("expected DISPENSED, got %q, %v", typ, err)
	}
	if _, err := ParseTransactionType("dispensed"); err == nil {
		t.Fatal("expected lower-case type to be rejected")
	}
}

func TestApplyCommand_Operator(t *testing.T) {
	if got := (ApplyCommand{}).Operator(); got != UnknownOperatorID {
		t.Fatalf("expected UnknownOperatorID, got %v", got)
	}
	id := uuid.New()
	if got := (ApplyCommand{PerformedByID: id}).Operator(); got != id {
		t.Fatalf("expected %v, got %v", id, got)
	}
	if UnknownOperatorID == uuid.Nil {
		t.Fatal("UnknownOperatorID must be distinguishable from an absent id")
	}
}

func TestNewTransaction(t *testing.T) {
	itemID := uuid.New()
	cmd := ApplyCommand{ItemID: itemID, Type: TxDispensed, Quantity: 4, Notes: "post-op"}
	tx := NewTransaction(cmd, 6)

	if tx.ID == uuid.Nil {
		t.Fatal("expected generated ID")
	}
	if tx.ItemID != itemID || tx.Type != TxDispensed || tx.Quantity != 4 || tx.QuantityAfter != 6 {
		t.Fatalf("unexpected record: %+v", tx)
	}
	if tx.PerformedByID != UnknownOperatorID {
		t.Fatalf("expected unknown operator sentinel, got %v", tx.PerformedByID)
	}
	if tx.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt")
	}
	if !cmd.SameRequest(tx) {
		t.Fatal("record must match the command that produced it")
	}
}
