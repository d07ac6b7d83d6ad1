package database

import (
	"path/filepath"
	"testing"

	"wedplan/internal/config"
)

func TestNewConfig(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		cfg := &config.Config{
			DBDriver: DriverPostgres, DBHost: "db", DBPort: "5433",
			DBUser: "u", DBPassword: "p", DBName: "weddings", DBSSLMode: "require",
		}
		c, err := NewConfig(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, want := c.DSN(), "host=db port=5433 user=u password=p dbname=weddings sslmode=require"; got != want {
			t.Errorf("DSN = %q, want %q", got, want)
		}
		if got, want := c.MigrateURL(), "postgres://u:p@db:5433/weddings?sslmode=require"; got != want {
			t.Errorf("MigrateURL = %q, want %q", got, want)
		}
	})

	t.Run("unsupported_driver", func(t *testing.T) {
		if _, err := NewConfig(&config.Config{DBDriver: "mysql"}); err == nil {
			t.Fatal("expected error for unsupported driver")
		}
	})
}

func TestManager_SQLite(t *testing.T) {
	c := &Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "wedplan.db")}

	m, err := NewManager(c)
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	defer m.Close()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}

	for _, table := range []string{"users", "weddings", "wedding_members", "budget_settings", "vendors", "guests", "checklist_items", "venues", "audit_logs"} {
		if !m.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %q after migration", table)
		}
	}
}
