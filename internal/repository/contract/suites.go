package contract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/maxviazov/petclinic-service/internal/seed"
)

// Anchor is the "today" the seed dataset is resolved against. Relative visits land at
// Anchor+1 (Leo), +3 (Rosy), +5 (Iggy) and +10 (Lucky).
var Anchor = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

// Stores bundles every repository of one implementation over the same data.
type Stores struct {
	Owners repository.OwnerRepository
	Pets   repository.PetRepository
	Visits repository.VisitRepository
	Vets   repository.VetRepository
	Tx     repository.TxManager
}

// StoresFactory must return stores loaded with Dataset(t).
type StoresFactory func(t *testing.T) (Stores, func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

// Dataset is the seed every factory loads.
func Dataset(t *testing.T) *seed.Dataset {
	t.Helper()
	ds, err := seed.Default(Anchor)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return ds
}

func day(offset int) time.Time { return Anchor.AddDate(0, 0, offset) }

func ownerIDs(items []model.Owner) []int64 {
	out := make([]int64, len(items))
	for i, o := range items {
		out[i] = o.ID
	}
	return out
}

func sameIDs(got, want []int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func RunOwnerRepositoryContract(t *testing.T, makeStores StoresFactory) {
	t.Helper()

	t.Run("get_loads_pets_and_visits", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		o, err := st.Owners.GetByID(context.Background(), 6)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if o.LastName != "Coleman" || len(o.Pets) != 2 {
			t.Fatalf("unexpected owner: %+v", o)
		}
		if o.Pets[0].Name != "Max" || o.Pets[1].Name != "Samantha" {
			t.Fatalf("pets not ordered by name: %s, %s", o.Pets[0].Name, o.Pets[1].Name)
		}
		sam := o.Pets[1]
		if sam.Type.Name != "cat" || len(sam.Visits) != 2 {
			t.Fatalf("unexpected pet: %+v", sam)
		}
		if !sam.Visits[0].Date.Before(sam.Visits[1].Date) || sam.Visits[1].Description != "spayed" {
			t.Fatalf("visits not ordered by date: %+v", sam.Visits)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		_, err := st.Owners.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("last_name_prefix_is_case_sensitive", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		page := repository.Page{Limit: 5}

		res, err := st.Owners.ListByLastNamePrefix(ctx, "Davis", page)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 2 || !sameIDs(ownerIDs(res.Items), []int64{2, 4}) {
			t.Fatalf("unexpected Davis page: total=%d ids=%v", res.Total, ownerIDs(res.Items))
		}

		res, err = st.Owners.ListByLastNamePrefix(ctx, "davis", page)
		if err != nil {
			t.Fatalf("list lower: %v", err)
		}
		if res.Total != 0 || len(res.Items) != 0 {
			t.Fatalf("expected no match for lower-case prefix, got %d", res.Total)
		}
	})

	t.Run("last_name_prefix_empty_matches_all_paged", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		first, err := st.Owners.ListByLastNamePrefix(ctx, "", repository.PageNumber(1, 5))
		if err != nil {
			t.Fatalf("page 1: %v", err)
		}
		if first.Total != 10 || !sameIDs(ownerIDs(first.Items), []int64{1, 2, 3, 4, 5}) {
			t.Fatalf("unexpected page 1: total=%d ids=%v", first.Total, ownerIDs(first.Items))
		}
		second, err := st.Owners.ListByLastNamePrefix(ctx, "", repository.PageNumber(2, 5))
		if err != nil {
			t.Fatalf("page 2: %v", err)
		}
		if !sameIDs(ownerIDs(second.Items), []int64{6, 7, 8, 9, 10}) {
			t.Fatalf("unexpected page 2: %v", ownerIDs(second.Items))
		}
		for _, o := range second.Items {
			if o.Pets == nil {
				t.Fatalf("owner %d has nil pets", o.ID)
			}
		}
	})

	t.Run("search_scenarios", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		cases := []struct {
			name string
			c    repository.OwnerCriteria
			want []int64
		}{
			{"city only", repository.OwnerCriteria{City: "Madison"}, []int64{1, 5, 8, 9}},
			{"city substring folded", repository.OwnerCriteria{City: "adis"}, []int64{1, 5, 8, 9}},
			{"all three", repository.OwnerCriteria{LastName: "Franklin", Telephone: "6085551023", City: "Madison"}, []int64{1}},
			{"last name and telephone", repository.OwnerCriteria{LastName: "Davis", Telephone: "6085551749"}, []int64{2}},
			{"last name folded", repository.OwnerCriteria{LastName: "d"}, []int64{2, 4}},
			{"city prefix", repository.OwnerCriteria{City: "Mon"}, []int64{6, 7}},
			{"telephone only", repository.OwnerCriteria{Telephone: "6085555487"}, []int64{10}},
			{"telephone is exact", repository.OwnerCriteria{Telephone: "608555548"}, []int64{}},
			{"conjunction excludes", repository.OwnerCriteria{LastName: "Davis", City: "Madison"}, []int64{}},
			{"wildcards are literal", repository.OwnerCriteria{City: "%"}, []int64{}},
		}
		for _, tc := range cases {
			res, err := st.Owners.Search(ctx, tc.c, repository.Page{Limit: 20})
			if err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if res.Total != len(tc.want) || !sameIDs(ownerIDs(res.Items), tc.want) {
				t.Fatalf("%s: total=%d ids=%v want %v", tc.name, res.Total, ownerIDs(res.Items), tc.want)
			}
		}
	})

	t.Run("search_one_row_per_owner", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		res, err := st.Owners.Search(context.Background(), repository.OwnerCriteria{}, repository.Page{Limit: 50})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		seen := map[int64]bool{}
		for _, o := range res.Items {
			if seen[o.ID] {
				t.Fatalf("owner %d repeated", o.ID)
			}
			seen[o.ID] = true
		}
		if res.Total != 10 || len(res.Items) != 10 {
			t.Fatalf("unexpected totals: total=%d len=%d", res.Total, len(res.Items))
		}
	})

	t.Run("page_past_end_keeps_total", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		res, err := st.Owners.Search(context.Background(), repository.OwnerCriteria{City: "Madison"}, repository.PageNumber(3, 5))
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(res.Items) != 0 || res.Total != 4 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("create_update_find", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := st.Owners.Create(ctx, model.Owner{
			FirstName: "Ada", LastName: "Lovelace", Address: "12 Analytical Rd.", City: "London", Telephone: "4412345678",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID <= 10 {
			t.Fatalf("expected id past seeded rows, got %d", created.ID)
		}

		created.City = "Marylebone"
		updated, err := st.Owners.Update(ctx, created)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.City != "Marylebone" || updated.ID != created.ID {
			t.Fatalf("unexpected update result: %+v", updated)
		}

		dups, err := st.Owners.FindByNameAndTelephone(ctx, "Ada", "Lovelace", "4412345678")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(dups) != 1 || dups[0].ID != created.ID {
			t.Fatalf("unexpected duplicates: %+v", dups)
		}
		none, err := st.Owners.FindByNameAndTelephone(ctx, "Ada", "Lovelace", "0000000000")
		if err != nil || len(none) != 0 {
			t.Fatalf("expected no duplicates, got %v %v", none, err)
		}
	})

	t.Run("update_not_found", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		_, err := st.Owners.Update(context.Background(), model.Owner{
			ID: 999999, FirstName: "No", LastName: "Body", Address: "x", City: "y", Telephone: "1234567890",
		})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunPetRepositoryContract(t *testing.T, makeStores StoresFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := st.Pets.Create(ctx, model.Pet{
			OwnerID: 1, Name: "Bolt", BirthDate: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), Type: model.PetType{ID: 2},
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := st.Pets.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name != "Bolt" || got.OwnerID != 1 || got.Type.Name != "dog" || got.Visits == nil {
			t.Fatalf("unexpected pet: %+v", got)
		}
		owner, err := st.Owners.GetByID(ctx, 1)
		if err != nil {
			t.Fatalf("owner: %v", err)
		}
		if len(owner.Pets) != 2 || owner.Pets[0].Name != "Bolt" {
			t.Fatalf("owner pets not updated: %+v", owner.Pets)
		}
	})

	t.Run("name_unique_per_owner", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		born := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := st.Pets.Create(ctx, model.Pet{OwnerID: 1, Name: "leo", BirthDate: born, Type: model.PetType{ID: 1}})
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		if _, err := st.Pets.Create(ctx, model.Pet{OwnerID: 2, Name: "Leo", BirthDate: born, Type: model.PetType{ID: 1}}); err != nil {
			t.Fatalf("same name for another owner should pass: %v", err)
		}
	})

	t.Run("create_unknown_owner_conflict", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		_, err := st.Pets.Create(context.Background(), model.Pet{
			OwnerID: 999999, Name: "Ghost", BirthDate: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Type: model.PetType{ID: 1},
		})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("update_keeps_owner", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		basil, err := st.Pets.GetByID(ctx, 2)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		basil.Name = "Basil II"
		basil.OwnerID = 5
		basil.Type = model.PetType{ID: 5}
		updated, err := st.Pets.Update(ctx, basil)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Name != "Basil II" || updated.OwnerID != 2 || updated.Type.Name != "bird" {
			t.Fatalf("unexpected update: %+v", updated)
		}
	})

	t.Run("update_rename_collision", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		rosy, err := st.Pets.GetByID(ctx, 3)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		rosy.Name = "JEWEL"
		if _, err := st.Pets.Update(ctx, rosy); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		if _, err := st.Pets.GetByID(context.Background(), 999999); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_types_sorted", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		types, err := st.Pets.ListTypes(context.Background())
		if err != nil {
			t.Fatalf("types: %v", err)
		}
		want := []string{"bird", "cat", "dog", "hamster", "lizard", "snake"}
		if len(types) != len(want) {
			t.Fatalf("unexpected types: %+v", types)
		}
		for i, name := range want {
			if types[i].Name != name {
				t.Fatalf("types[%d]=%s want %s", i, types[i].Name, name)
			}
		}
	})
}

func RunVisitRepositoryContract(t *testing.T, makeStores StoresFactory) {
	t.Helper()

	t.Run("create_and_list_by_pet", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		v, err := st.Visits.Create(ctx, model.Visit{PetID: 1, Date: day(-30), Description: "weigh-in"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if v.ID == 0 {
			t.Fatalf("expected id assigned")
		}
		visits, err := st.Visits.ListByPet(ctx, 1)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(visits) != 2 || visits[0].ID != v.ID {
			t.Fatalf("unexpected visits: %+v", visits)
		}
	})

	t.Run("create_unknown_pet_conflict", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		_, err := st.Visits.Create(context.Background(), model.Visit{PetID: 999999, Date: Anchor, Description: "x"})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("list_between_inclusive_and_preloaded", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		week, err := st.Visits.ListBetween(ctx, day(0), day(7))
		if err != nil {
			t.Fatalf("week: %v", err)
		}
		if len(week) != 3 {
			t.Fatalf("expected 3 visits this week, got %d", len(week))
		}
		wantPets := []string{"Leo", "Rosy", "Iggy"}
		wantOwners := []string{"Franklin", "Rodriquez", "Davis"}
		for i, u := range week {
			if u.Pet.Name != wantPets[i] || u.Owner.LastName != wantOwners[i] {
				t.Fatalf("visit %d: pet=%s owner=%s", i, u.Pet.Name, u.Owner.LastName)
			}
			if i > 0 && u.Date.Before(week[i-1].Date) {
				t.Fatalf("not ascending at %d", i)
			}
		}

		single, err := st.Visits.ListBetween(ctx, day(1), day(1))
		if err != nil {
			t.Fatalf("single: %v", err)
		}
		if len(single) != 1 || single[0].Pet.Name != "Leo" {
			t.Fatalf("expected only Leo on day+1, got %+v", single)
		}

		wide, err := st.Visits.ListBetween(ctx, day(0), day(10))
		if err != nil {
			t.Fatalf("wide: %v", err)
		}
		if len(wide) != 4 || wide[3].Owner.LastName != "Estaban" {
			t.Fatalf("expected end bound inclusive, got %+v", wide)
		}
	})
}

func RunVetRepositoryContract(t *testing.T, makeStores StoresFactory) {
	t.Helper()

	t.Run("list_all_with_specialties", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		vets, err := st.Vets.ListAll(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(vets) != 6 {
			t.Fatalf("expected 6 vets, got %d", len(vets))
		}
		for i, v := range vets {
			if v.ID != int64(i+1) {
				t.Fatalf("vets not ordered by id: %v at %d", v.ID, i)
			}
			if v.Specialties == nil {
				t.Fatalf("vet %d has nil specialties", v.ID)
			}
		}
		douglas := vets[2]
		if douglas.NrOfSpecialties() != 2 || douglas.Specialties[0].Name != "dentistry" || douglas.Specialties[1].Name != "surgery" {
			t.Fatalf("unexpected specialties: %+v", douglas.Specialties)
		}
		if vets[0].NrOfSpecialties() != 0 {
			t.Fatalf("Carter should have none: %+v", vets[0].Specialties)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeStores StoresFactory) {
	t.Helper()

	newOwner := model.Owner{FirstName: "Tx", LastName: "Owner", Address: "1 Main St.", City: "Madison", Telephone: "6085550000"}

	t.Run("commit_on_nil_error", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := st.Tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := st.Owners.Create(ctx, newOwner)
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := st.Owners.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		st, cleanup := makeStores(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		errMarker := errors.New("boom")
		err := st.Tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := st.Owners.Create(ctx, newOwner)
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := st.Owners.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
	t.Run("ping_canceled_context_fails", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := p.Ping(ctx); err == nil {
			t.Fatal("expected ping to fail on a canceled context")
		}
	})
}

// RunAll wires every store suite against one factory.
func RunAll(t *testing.T, makeStores StoresFactory) {
	t.Run("owners", func(t *testing.T) { RunOwnerRepositoryContract(t, makeStores) })
	t.Run("pets", func(t *testing.T) { RunPetRepositoryContract(t, makeStores) })
	t.Run("visits", func(t *testing.T) { RunVisitRepositoryContract(t, makeStores) })
	t.Run("vets", func(t *testing.T) { RunVetRepositoryContract(t, makeStores) })
	t.Run("tx", func(t *testing.T) { RunTxManagerContract(t, makeStores) })
}
