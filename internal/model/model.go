// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import (
	"strings"
	"time"
)

// Owner is a pet owner registered at the clinic.
type Owner struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Telephone string `json:"telephone"`
	Pets      []Pet  `json:"pets"`
}

// FullName is what the views and logs show for an owner.
func (o Owner) FullName() string { return strings.TrimSpace(o.FirstName + " " + o.LastName) }

// Pet returns the pet with the given name, case-insensitively.
func (o Owner) Pet(name string) (Pet, bool) {
	name = strings.TrimSpace(name)
	for _, p := range o.Pets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Pet{}, false
}

// PetType is a kind of animal (cat, dog, ...).
type PetType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Pet belongs to exactly one owner. OwnerID is a back-reference, not ownership.
type Pet struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birthDate"`
	Type      PetType   `json:"type"`
	Visits    []Visit   `json:"visits"`
}

// Visit is a single appointment for a pet. Date has day precision (UTC midnight).
type Visit struct {
	ID          int64     `json:"id"`
	PetID       int64     `json:"petId"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// PetRef and OwnerRef are the summaries preloaded with upcoming visits.
type PetRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type OwnerRef struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (o OwnerRef) FullName() string { return strings.TrimSpace(o.FirstName + " " + o.LastName) }

// UpcomingVisit is a read-only projection: a visit with its pet and owner loaded in the same query.
type UpcomingVisit struct {
	Visit
	Pet   PetRef   `json:"pet"`
	Owner OwnerRef `json:"owner"`
}

// Specialty is a name-only tag shared across vets.
type Specialty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Vet is a veterinarian. Specialties are deduplicated by name and kept sorted by name.
type Vet struct {
	ID          int64       `json:"id"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Specialties []Specialty `json:"specialties"`
}

func (v Vet) NrOfSpecialties() int { return len(v.Specialties) }

// HasSpecialty reports whether the vet has a specialty with the given name, case-insensitively.
func (v Vet) HasSpecialty(name string) bool {
	for _, s := range v.Specialties {
		if strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

// Vets wraps the vet list so the JSON payload is an object rather than a bare array.
type Vets struct {
	VetList []Vet `json:"vetList"`
}

// Date truncates t to a calendar day in UTC, keeping the wall-clock date of t's location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
