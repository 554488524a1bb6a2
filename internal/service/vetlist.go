package service

import (
	"sort"
	"strings"

	"github.com/maxviazov/petclinic-service/internal/model"
)

// NoSpecialty is the selector that picks vets without any specialty.
const NoSpecialty = "none"

// ScopeByLastName keeps vets whose last name starts with prefix (case-sensitive).
// An empty prefix keeps everyone.
func ScopeByLastName(vets []model.Vet, prefix string) []model.Vet {
	if prefix == "" {
		return vets
	}
	out := make([]model.Vet, 0, len(vets))
	for _, v := range vets {
		if strings.HasPrefix(v.LastName, prefix) {
			out = append(out, v)
		}
	}
	return out
}

// SpecialtyNames lists the distinct specialty names across vets, sorted.
func SpecialtyNames(vets []model.Vet) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, v := range vets {
		for _, s := range v.Specialties {
			if _, ok := seen[s.Name]; ok {
				continue
			}
			seen[s.Name] = struct{}{}
			out = append(out, s.Name)
		}
	}
	sort.Strings(out)
	return out
}

// FilterBySpecialty applies the specialty selector: empty keeps all, "none" keeps vets
// without specialties, anything else keeps vets holding that specialty (case-insensitive).
func FilterBySpecialty(vets []model.Vet, selector string) []model.Vet {
	if selector == "" {
		return vets
	}
	none := strings.EqualFold(selector, NoSpecialty)
	out := make([]model.Vet, 0, len(vets))
	for _, v := range vets {
		if (none && v.NrOfSpecialties() == 0) || (!none && v.HasSpecialty(selector)) {
			out = append(out, v)
		}
	}
	return out
}
