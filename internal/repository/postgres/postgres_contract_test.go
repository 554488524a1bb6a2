package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/maxviazov/petclinic-service/internal/repository/contract"
	"github.com/rs/zerolog"
)

var (
	pool   *pgxpool.Pool
	dsn    string
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		// allow skipping contract tests unless explicitly enabled
		skippy = true
		os.Exit(m.Run())
	}

	dsn = buildDSNFromEnv()
	if dsn == "" {
		fmt.Println("[contract] DATABASE_URL or APP_POSTGRES_* env not set; skipping")
		skippy = true
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	pool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("[contract] pgxpool new error:", err)
		os.Exit(1)
	}
	if err := pool.Ping(ctx); err != nil {
		fmt.Println("[contract] db ping error:", err)
		os.Exit(1)
	}

	log := zerolog.Nop()
	if err := Migrate(ctx, pool, &log); err != nil {
		fmt.Println("[contract] goose up error:", err)
		os.Exit(1)
	}

	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and provide DB env")
	}
}

func buildDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	user := firstNonEmpty(os.Getenv("APP_POSTGRES_USER"), os.Getenv("POSTGRES_USER"), os.Getenv("DB_USER"))
	pass := firstNonEmpty(os.Getenv("APP_POSTGRES_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"), os.Getenv("DB_PASSWORD"))
	host := firstNonEmpty(os.Getenv("APP_POSTGRES_HOST"), os.Getenv("POSTGRES_HOST"), "localhost")
	port := firstNonEmpty(os.Getenv("APP_POSTGRES_PORT"), os.Getenv("POSTGRES_PORT"), "5432")
	db := firstNonEmpty(os.Getenv("APP_POSTGRES_DBNAME"), os.Getenv("POSTGRES_DB"), os.Getenv("DB_NAME"))
	ssl := firstNonEmpty(os.Getenv("APP_POSTGRES_SSLMODE"), os.Getenv("POSTGRES_SSLMODE"), "disable")
	if user == "" || pass == "" || db == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, ssl)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateAll(t *testing.T) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		"TRUNCATE TABLE vet_specialties, specialties, vets, visits, pets, owners, types RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func makeStores(t *testing.T) (contract.Stores, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	applied, err := Seed(context.Background(), pool, contract.Dataset(t))
	if err != nil || !applied {
		t.Fatalf("seed: applied=%v err=%v", applied, err)
	}
	return contract.Stores{
		Owners: NewOwnerRepository(pool),
		Pets:   NewPetRepository(pool),
		Visits: NewVisitRepository(pool),
		Vets:   NewVetRepository(pool),
		Tx:     NewTxManager(pool),
	}, func() { truncateAll(t) }
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	skipIfNeeded(t)
	return NewPinger(pool), func() {}
}

func TestStores_PostgresContract(t *testing.T) {
	contract.RunAll(t, makeStores)
}

func TestPinger_PostgresContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}

func TestSeed_Idempotent(t *testing.T) {
	skipIfNeeded(t)
	truncateAll(t)
	t.Cleanup(func() { truncateAll(t) })
	ctx := context.Background()

	applied, err := Seed(ctx, pool, contract.Dataset(t))
	if err != nil || !applied {
		t.Fatalf("first seed: applied=%v err=%v", applied, err)
	}
	applied, err = Seed(ctx, pool, contract.Dataset(t))
	if err != nil || applied {
		t.Fatalf("second seed should be a no-op: applied=%v err=%v", applied, err)
	}
}
