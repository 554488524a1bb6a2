package service_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/service"
)

func vet(last string, specs ...string) model.Vet {
	v := model.Vet{LastName: last, Specialties: []model.Specialty{}}
	for _, s := range specs {
		v.Specialties = append(v.Specialties, model.Specialty{Name: s})
	}
	return v
}

func TestSpecialtyNames_DistinctSorted(t *testing.T) {
	vets := []model.Vet{vet("A", "surgery", "dentistry"), vet("B", "radiology", "surgery"), vet("C")}
	got := service.SpecialtyNames(vets)
	if diff := cmp.Diff([]string{"dentistry", "radiology", "surgery"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := service.SpecialtyNames(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty, non-nil list, got %#v", got)
	}
}

func TestFilterBySpecialty(t *testing.T) {
	vets := []model.Vet{vet("A", "surgery"), vet("B"), vet("C", "Radiology"), vet("D")}
	cases := map[string][]string{
		"":          {"A", "B", "C", "D"},
		"none":      {"B", "D"},
		"NONE":      {"B", "D"},
		"radiology": {"C"},
		"dentistry": {},
	}
	for sel, want := range cases {
		if diff := cmp.Diff(want, lastNames(service.FilterBySpecialty(vets, sel))); diff != "" {
			t.Errorf("selector %q (-want +got):\n%s", sel, diff)
		}
	}
}

func TestScopeByLastName(t *testing.T) {
	vets := []model.Vet{vet("Douglas"), vet("Davis"), vet("Leary")}
	if diff := cmp.Diff([]string{"Douglas", "Davis"}, lastNames(service.ScopeByLastName(vets, "D"))); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := service.ScopeByLastName(vets, ""); len(got) != 3 {
		t.Errorf("empty prefix should keep all, got %d", len(got))
	}
}
