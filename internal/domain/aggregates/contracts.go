package aggregates

import (
	"fmt"
	"strings"
)

// WriteTxOwnership defines who owns write transaction boundaries.
type WriteTxOwnership string

const (
	// WriteTxOwnedByAggregate means write methods open and commit their own transaction.
	WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"
)

// ReadPolicy defines how an aggregate exposes reads.
type ReadPolicy string

const (
	// ReadPolicyInvariantScoped allows only reads that share the aggregate's shape.
	ReadPolicyInvariantScoped ReadPolicy = "invariant_scoped_reads"
	// ReadPolicyTableRepoQueries keeps broad read-model queries on table repos.
	ReadPolicyTableRepoQueries ReadPolicy = "table_repo_queries"
)

// Contract describes aggregate-level policy expectations.
type Contract struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	ReadPolicy       ReadPolicy
	Notes            string
}

// Aggregate is the common marker for all aggregate contracts.
type Aggregate interface {
	Contract() Contract
}

func (c Contract) RequiresAggregateOwnedTx() bool {
	return c.WriteTxOwnership == WriteTxOwnedByAggregate
}

// Validate reports a contract that is missing its name or a policy.
func (c Contract) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("aggregate contract: missing name")
	}
	switch c.WriteTxOwnership {
	case WriteTxOwnedByAggregate:
	default:
		return fmt.Errorf("aggregate contract %s: unknown tx ownership %q", c.Name, c.WriteTxOwnership)
	}
	switch c.ReadPolicy {
	case ReadPolicyInvariantScoped, ReadPolicyTableRepoQueries:
	default:
		return fmt.Errorf("aggregate contract %s: unknown read policy %q", c.Name, c.ReadPolicy)
	}
	return nil
}
