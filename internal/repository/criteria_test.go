package repository

import (
	"testing"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestOwnerCriteria_Predicates(t *testing.T) {
	assert.Empty(t, OwnerCriteria{}.Predicates())
	assert.True(t, OwnerCriteria{City: "   "}.IsEmpty())

	preds := OwnerCriteria{LastName: " Davis ", City: "Madison"}.Predicates()
	assert.Equal(t, []OwnerPredicate{
		{Field: FieldLastName, Op: OpPrefixFold, Value: "Davis"},
		{Field: FieldCity, Op: OpContainsFold, Value: "Madison"},
	}, preds)
}

func TestOwnerPredicate_Match(t *testing.T) {
	george := model.Owner{LastName: "Franklin", City: "Madison", Telephone: "6085551023"}

	cases := []struct {
		name string
		p    OwnerPredicate
		want bool
	}{
		{"prefix fold", OwnerPredicate{FieldLastName, OpPrefixFold, "fra"}, true},
		{"prefix fold miss", OwnerPredicate{FieldLastName, OpPrefixFold, "lin"}, false},
		{"prefix case-sensitive", OwnerPredicate{FieldLastName, OpPrefix, "fra"}, false},
		{"prefix case-sensitive hit", OwnerPredicate{FieldLastName, OpPrefix, "Fra"}, true},
		{"equals", OwnerPredicate{FieldTelephone, OpEquals, "6085551023"}, true},
		{"equals partial", OwnerPredicate{FieldTelephone, OpEquals, "608555102"}, false},
		{"contains fold", OwnerPredicate{FieldCity, OpContainsFold, "DIS"}, true},
		{"unknown field", OwnerPredicate{"address", OpEquals, ""}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.Match(george))
		})
	}
}

func TestMatchAll(t *testing.T) {
	betty := model.Owner{LastName: "Davis", City: "Sun Prairie", Telephone: "6085551749"}
	assert.True(t, MatchAll(nil, betty))
	assert.True(t, MatchAll(OwnerCriteria{LastName: "Davis", Telephone: "6085551749"}.Predicates(), betty))
	assert.False(t, MatchAll(OwnerCriteria{LastName: "Davis", City: "Madison"}.Predicates(), betty))
	assert.Nil(t, LastNamePrefix(""))
}
