package mapping

import (
	"fmt"
	"os"

	"clogen/internal/persistence/memory"
	"clogen/internal/persistence/postgres"
	"clogen/internal/persistence/sqlite"
	"clogen/pkg/domain"
)

// OverrideDriver identifies a concrete override store implementation.
type OverrideDriver string

const (
	OverrideMemory   OverrideDriver = "memory"   // in-memory only (tests / ephemeral)
	OverrideSQLite   OverrideDriver = "sqlite"   // embedded sqlite file
	OverridePostgres OverrideDriver = "postgres" // PostgreSQL server
)

// OpenOverrideStore selects an override store backend using environment
// variables. Defaults to sqlite when unset.
//
//	CLOGEN_OVERRIDE_DRIVER: memory|sqlite|postgres (default sqlite)
//	CLOGEN_SQLITE_PATH: path to sqlite file (default ./clogen.db)
//	CLOGEN_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenOverrideStore() (domain.OverrideStore, error) {
	driver := os.Getenv("CLOGEN_OVERRIDE_DRIVER")
	if driver == "" {
		driver = string(OverrideSQLite)
	}
	switch OverrideDriver(driver) {
	case OverrideMemory:
		return memory.NewStore(), nil
	case OverrideSQLite:
		return sqlite.NewStore(os.Getenv("CLOGEN_SQLITE_PATH"))
	case OverridePostgres:
		return postgres.NewStore(os.Getenv("CLOGEN_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown override driver %s", driver)
	}
}
