package models

import "testing"

func TestTableNames(t *testing.T) {
	if got := (LedgerEvent{}).TableName(); got != "ledger_events" {
		t.Fatalf("unexpected LedgerEvent table name: %s", got)
	}
}

func TestAllListsEveryModel(t *testing.T) {
	if got := len(All()); got != 5 {
		t.Fatalf("expected 5 models, got %d", got)
	}
}
