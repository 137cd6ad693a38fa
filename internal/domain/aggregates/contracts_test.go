package aggregates

import "testing"

func TestPostAggregateContractIsValid(t *testing.T) {
	if err := PostAggregateContract.Validate(); err != nil {
		t.Fatalf("contract invalid: %v", err)
	}
	if !PostAggregateContract.RequiresAggregateOwnedTx() {
		t.Fatal("post writes should own their transaction")
	}
}

func TestContractValidateRejectsIncomplete(t *testing.T) {
	if err := (Contract{}).Validate(); err == nil {
		t.Fatal("expected empty contract to fail")
	}
	c := Contract{Name: "x", WriteTxOwnership: WriteTxOwnedByAggregate, ReadPolicy: "whatever"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected unknown read policy to fail")
	}
}
