package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/maxviazov/petclinic-service/internal/service"
)

func fieldSet(err error) map[string]string {
	out := map[string]string{}
	for _, fe := range service.FieldErrors(err) {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestPetService_CreatePet(t *testing.T) {
	svc := newServices(t)
	born := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)

	p, err := svc.pets.CreatePet(ctx, 1, service.PetInput{Name: " Bolt ", BirthDate: born, TypeID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Bolt", p.Name)
	assert.Equal(t, "dog", p.Type.Name)
	assert.Equal(t, int64(1), p.OwnerID)

	owner, err := svc.owners.GetOwner(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, owner.Pets, 2)
}

func TestPetService_CreatePet_Validation(t *testing.T) {
	svc := newServices(t)

	_, err := svc.pets.CreatePet(ctx, 1, service.PetInput{})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	fields := fieldSet(err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "birthDate")
	assert.Contains(t, fields, "type")

	_, err = svc.pets.CreatePet(ctx, 1, service.PetInput{Name: "leo", BirthDate: anchor.AddDate(-1, 0, 0), TypeID: 1})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, "already exists", fieldSet(err)["name"])

	_, err = svc.pets.CreatePet(ctx, 1, service.PetInput{Name: "Nova", BirthDate: anchor.AddDate(0, 0, 1), TypeID: 1})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, "must not be in the future", fieldSet(err)["birthDate"])

	_, err = svc.pets.CreatePet(ctx, 1, service.PetInput{Name: "Nova", BirthDate: anchor, TypeID: 99})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, "unknown pet type", fieldSet(err)["type"])
}

func TestPetService_CreatePet_UnknownOwner(t *testing.T) {
	svc := newServices(t)
	_, err := svc.pets.CreatePet(ctx, 404, service.PetInput{Name: "Nova", BirthDate: anchor, TypeID: 1})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPetService_GetPet_ChecksOwnership(t *testing.T) {
	svc := newServices(t)

	p, err := svc.pets.GetPet(ctx, 6, 7)
	require.NoError(t, err)
	assert.Equal(t, "Samantha", p.Name)

	_, err = svc.pets.GetPet(ctx, 1, 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPetService_UpdatePet(t *testing.T) {
	svc := newServices(t)

	p, err := svc.pets.UpdatePet(ctx, 3, 3, service.PetInput{Name: "Rosie", BirthDate: time.Date(2011, 4, 17, 0, 0, 0, 0, time.UTC), TypeID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Rosie", p.Name)

	// keeping its own name is not a duplicate
	_, err = svc.pets.UpdatePet(ctx, 3, 3, service.PetInput{Name: "ROSIE", BirthDate: time.Date(2011, 4, 17, 0, 0, 0, 0, time.UTC), TypeID: 2})
	require.NoError(t, err)

	_, err = svc.pets.UpdatePet(ctx, 3, 3, service.PetInput{Name: "Jewel", BirthDate: time.Date(2011, 4, 17, 0, 0, 0, 0, time.UTC), TypeID: 2})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.pets.UpdatePet(ctx, 3, 3, service.PetInput{ID: 4, Name: "Rosy", BirthDate: anchor, TypeID: 2})
	assert.ErrorIs(t, err, service.ErrIdentityMismatch)

	_, err = svc.pets.UpdatePet(ctx, 1, 3, service.PetInput{Name: "Rosy", BirthDate: anchor, TypeID: 2})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPetService_ListPetTypes(t *testing.T) {
	svc := newServices(t)
	types, err := svc.pets.ListPetTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 6)
	assert.Equal(t, "bird", types[0].Name)
}
