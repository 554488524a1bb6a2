package memory

import (
	"testing"

	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/maxviazov/petclinic-service/internal/repository/contract"
)

func makeStores(t *testing.T) (contract.Stores, func()) {
	s := New(contract.Dataset(t))
	return contract.Stores{
		Owners: NewOwnerRepository(s),
		Pets:   NewPetRepository(s),
		Visits: NewVisitRepository(s),
		Vets:   NewVetRepository(s),
		Tx:     NewTxManager(s),
	}, func() {}
}

func TestStores_MemoryContract(t *testing.T) {
	contract.RunAll(t, makeStores)
}

func TestPinger_MemoryContract(t *testing.T) {
	contract.RunPingerContract(t, func(t *testing.T) (repository.Pinger, func()) {
		return NewPinger(), func() {}
	})
}
