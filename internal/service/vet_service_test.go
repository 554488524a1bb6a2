package service_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/service"
)

func lastNames(vets []model.Vet) []string {
	out := make([]string, len(vets))
	for i, v := range vets {
		out[i] = v.LastName
	}
	return out
}

func TestVetService_Directory(t *testing.T) {
	svc := newServices(t).vets
	cases := []struct {
		name      string
		q         service.VetQuery
		want      []string
		total     int
		pages     int
		specNames []string
	}{
		{"first page", service.VetQuery{Page: 1}, []string{"Carter", "Leary", "Douglas", "Ortega", "Stevens"}, 6, 2, []string{"dentistry", "radiology", "surgery"}},
		{"second page", service.VetQuery{Page: 2}, []string{"Jenkins"}, 6, 2, []string{"dentistry", "radiology", "surgery"}},
		{"past the end", service.VetQuery{Page: 3}, []string{}, 6, 2, []string{"dentistry", "radiology", "surgery"}},
		{"radiology", service.VetQuery{Specialty: "radiology", Page: 1}, []string{"Leary", "Stevens"}, 2, 1, []string{"dentistry", "radiology", "surgery"}},
		{"surgery folded", service.VetQuery{Specialty: "SURGERY", Page: 1}, []string{"Douglas", "Ortega"}, 2, 1, []string{"dentistry", "radiology", "surgery"}},
		{"none", service.VetQuery{Specialty: "None", Page: 1}, []string{"Carter", "Jenkins"}, 2, 1, []string{"dentistry", "radiology", "surgery"}},
		{"unknown specialty", service.VetQuery{Specialty: "cardiology", Page: 1}, []string{}, 0, 0, []string{"dentistry", "radiology", "surgery"}},
		{"last name scope", service.VetQuery{LastName: "D", Page: 1}, []string{"Douglas"}, 1, 1, []string{"dentistry", "surgery"}},
		{"last name scope is case-sensitive", service.VetQuery{LastName: "d", Page: 1}, []string{}, 0, 0, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir, err := svc.Directory(ctx, tc.q)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, lastNames(dir.Vets.Items)); diff != "" {
				t.Errorf("vets mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.total, dir.Vets.Total)
			assert.Equal(t, tc.pages, dir.Vets.TotalPages())
			assert.Equal(t, tc.specNames, dir.Specialties)
		})
	}
}

func TestVetService_Directory_BadPage(t *testing.T) {
	_, err := newServices(t).vets.Directory(ctx, service.VetQuery{Page: 0})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestVetService_ListVets(t *testing.T) {
	vets, err := newServices(t).vets.ListVets(ctx)
	require.NoError(t, err)
	assert.Len(t, vets.VetList, 6)
}
