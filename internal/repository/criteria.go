package repository

import (
	"strings"

	"github.com/maxviazov/petclinic-service/internal/model"
)

// OwnerField names an owner column a predicate can target.
type OwnerField string

const (
	FieldLastName  OwnerField = "last_name"
	FieldTelephone OwnerField = "telephone"
	FieldCity      OwnerField = "city"
)

// MatchOp is how a predicate compares a column with its value.
type MatchOp int

const (
	// OpPrefixFold is a case-insensitive prefix match.
	OpPrefixFold MatchOp = iota
	// OpEquals is an exact, case-sensitive match.
	OpEquals
	// OpContainsFold is a case-insensitive substring match.
	OpContainsFold
	// OpPrefix is a case-sensitive prefix match.
	OpPrefix
)

// OwnerPredicate is one supplied search condition. Stores fold a predicate list with AND.
type OwnerPredicate struct {
	Field OwnerField
	Op    MatchOp
	Value string
}

// OwnerCriteria holds the optional owner search inputs. Empty fields are not filters.
type OwnerCriteria struct {
	LastName  string
	Telephone string
	City      string
}

// Predicates lists a predicate for each supplied criterion, in a stable order.
// No criteria means no predicates, which matches every owner.
func (c OwnerCriteria) Predicates() []OwnerPredicate {
	var out []OwnerPredicate
	if v := strings.TrimSpace(c.LastName); v != "" {
		out = append(out, OwnerPredicate{Field: FieldLastName, Op: OpPrefixFold, Value: v})
	}
	if v := strings.TrimSpace(c.Telephone); v != "" {
		out = append(out, OwnerPredicate{Field: FieldTelephone, Op: OpEquals, Value: v})
	}
	if v := strings.TrimSpace(c.City); v != "" {
		out = append(out, OwnerPredicate{Field: FieldCity, Op: OpContainsFold, Value: v})
	}
	return out
}

// IsEmpty reports whether no criterion was supplied.
func (c OwnerCriteria) IsEmpty() bool { return len(c.Predicates()) == 0 }

// LastNamePrefix is the predicate used by the last-name-only search path.
func LastNamePrefix(prefix string) []OwnerPredicate {
	if prefix == "" {
		return nil
	}
	return []OwnerPredicate{{Field: FieldLastName, Op: OpPrefix, Value: prefix}}
}

// Match evaluates the predicate against an owner in memory.
func (p OwnerPredicate) Match(o model.Owner) bool {
	var col string
	switch p.Field {
	case FieldLastName:
		col = o.LastName
	case FieldTelephone:
		col = o.Telephone
	case FieldCity:
		col = o.City
	default:
		return false
	}
	switch p.Op {
	case OpPrefixFold:
		return strings.HasPrefix(strings.ToLower(col), strings.ToLower(p.Value))
	case OpEquals:
		return col == p.Value
	case OpContainsFold:
		return strings.Contains(strings.ToLower(col), strings.ToLower(p.Value))
	case OpPrefix:
		return strings.HasPrefix(col, p.Value)
	default:
		return false
	}
}

// MatchAll folds the predicates with AND. An empty list matches everything.
func MatchAll(preds []OwnerPredicate, o model.Owner) bool {
	for _, p := range preds {
		if !p.Match(o) {
			return false
		}
	}
	return true
}
