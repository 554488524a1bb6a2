// Package seed holds the demo clinic dataset and turns it into domain values
// that the memory and Postgres stores can load.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/maxviazov/petclinic-service/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed petclinic.yaml
var defaultData []byte

const dateLayout = "2006-01-02"

// Dataset is a fully resolved clinic: every pet carries its type, every vet its specialties.
type Dataset struct {
	Types       []model.PetType
	Specialties []model.Specialty
	Vets        []model.Vet
	Owners      []model.Owner
}

// Pets flattens the owners' pets, ordered by id.
func (d *Dataset) Pets() []model.Pet {
	var out []model.Pet
	for _, o := range d.Owners {
		out = append(out, o.Pets...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Visits flattens every pet's visits, ordered by id.
func (d *Dataset) Visits() []model.Visit {
	var out []model.Visit
	for _, p := range d.Pets() {
		out = append(out, p.Visits...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Default parses the embedded demo clinic. Relative visit dates are anchored at now.
func Default(now time.Time) (*Dataset, error) {
	return Parse(defaultData, now)
}

type file struct {
	Types       []string   `yaml:"types"`
	Specialties []string   `yaml:"specialties"`
	Vets        []vetDoc   `yaml:"vets"`
	Owners      []ownerDoc `yaml:"owners"`
}

type vetDoc struct {
	ID          int64    `yaml:"id"`
	FirstName   string   `yaml:"first_name"`
	LastName    string   `yaml:"last_name"`
	Specialties []string `yaml:"specialties"`
}

type ownerDoc struct {
	ID        int64    `yaml:"id"`
	FirstName string   `yaml:"first_name"`
	LastName  string   `yaml:"last_name"`
	Address   string   `yaml:"address"`
	City      string   `yaml:"city"`
	Telephone string   `yaml:"telephone"`
	Pets      []petDoc `yaml:"pets"`
}

type petDoc struct {
	ID        int64      `yaml:"id"`
	Name      string     `yaml:"name"`
	BirthDate string     `yaml:"birth_date"`
	Type      string     `yaml:"type"`
	Visits    []visitDoc `yaml:"visits"`
}

type visitDoc struct {
	ID          int64  `yaml:"id"`
	Date        string `yaml:"date"`
	InDays      *int   `yaml:"in_days"`
	Description string `yaml:"description"`
}

// Parse decodes a dataset document and resolves names into ids.
func Parse(data []byte, now time.Time) (*Dataset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	today := model.Date(now)

	ds := &Dataset{}
	types := make(map[string]model.PetType, len(f.Types))
	for i, name := range f.Types {
		t := model.PetType{ID: int64(i + 1), Name: name}
		types[strings.ToLower(name)] = t
		ds.Types = append(ds.Types, t)
	}
	specs := make(map[string]model.Specialty, len(f.Specialties))
	for i, name := range f.Specialties {
		s := model.Specialty{ID: int64(i + 1), Name: name}
		specs[strings.ToLower(name)] = s
		ds.Specialties = append(ds.Specialties, s)
	}

	var errs []error
	for _, v := range f.Vets {
		vet := model.Vet{ID: v.ID, FirstName: v.FirstName, LastName: v.LastName, Specialties: []model.Specialty{}}
		for _, name := range v.Specialties {
			s, ok := specs[strings.ToLower(name)]
			if !ok {
				errs = append(errs, fmt.Errorf("vet %d: unknown specialty %q", v.ID, name))
				continue
			}
			vet.Specialties = append(vet.Specialties, s)
		}
		sort.Slice(vet.Specialties, func(i, j int) bool { return vet.Specialties[i].Name < vet.Specialties[j].Name })
		ds.Vets = append(ds.Vets, vet)
	}

	petIDs := map[int64]bool{}
	visitIDs := map[int64]bool{}
	for _, o := range f.Owners {
		owner := model.Owner{
			ID:        o.ID,
			FirstName: o.FirstName,
			LastName:  o.LastName,
			Address:   o.Address,
			City:      o.City,
			Telephone: o.Telephone,
			Pets:      []model.Pet{},
		}
		for _, p := range o.Pets {
			if petIDs[p.ID] {
				errs = append(errs, fmt.Errorf("pet %d: duplicate id", p.ID))
				continue
			}
			petIDs[p.ID] = true
			t, ok := types[strings.ToLower(p.Type)]
			if !ok {
				errs = append(errs, fmt.Errorf("pet %d: unknown type %q", p.ID, p.Type))
				continue
			}
			born, err := time.Parse(dateLayout, p.BirthDate)
			if err != nil {
				errs = append(errs, fmt.Errorf("pet %d: birth_date: %w", p.ID, err))
				continue
			}
			pet := model.Pet{ID: p.ID, OwnerID: o.ID, Name: p.Name, BirthDate: born, Type: t, Visits: []model.Visit{}}
			for _, v := range p.Visits {
				if visitIDs[v.ID] {
					errs = append(errs, fmt.Errorf("visit %d: duplicate id", v.ID))
					continue
				}
				visitIDs[v.ID] = true
				date, err := v.resolve(today)
				if err != nil {
					errs = append(errs, fmt.Errorf("visit %d: %w", v.ID, err))
					continue
				}
				pet.Visits = append(pet.Visits, model.Visit{ID: v.ID, PetID: p.ID, Date: date, Description: v.Description})
			}
			sort.SliceStable(pet.Visits, func(i, j int) bool { return pet.Visits[i].Date.Before(pet.Visits[j].Date) })
			owner.Pets = append(owner.Pets, pet)
		}
		sort.SliceStable(owner.Pets, func(i, j int) bool { return owner.Pets[i].Name < owner.Pets[j].Name })
		ds.Owners = append(ds.Owners, owner)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return ds, nil
}

func (v visitDoc) resolve(today time.Time) (time.Time, error) {
	switch {
	case v.InDays != nil && v.Date != "":
		return time.Time{}, errors.New("date and in_days are mutually exclusive")
	case v.InDays != nil:
		return today.AddDate(0, 0, *v.InDays), nil
	case v.Date != "":
		return time.Parse(dateLayout, v.Date)
	default:
		return time.Time{}, errors.New("date or in_days is required")
	}
}
