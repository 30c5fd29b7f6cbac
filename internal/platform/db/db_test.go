package db

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/mfarhila/ABSENSI-GURU/internal/platform/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "localhost",
		Port:     3306,
		Username: "root",
		Password: "pw",
		DBName:   "absensi_db",
	})

	if !strings.HasPrefix(dsn, "root:pw@tcp(localhost:3306)/absensi_db?") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	for _, want := range []string{"parseTime=true", "timeout=3s"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %s missing %s", dsn, want)
		}
	}

	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("dsn does not round-trip: %v", err)
	}
	if parsed.Loc.String() != "UTC" {
		t.Fatalf("expected UTC location, got %s", parsed.Loc)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	if !IsDuplicateKey(dup) {
		t.Fatal("expected 1062 to be a duplicate key error")
	}
	if !IsDuplicateKey(fmt.Errorf("insert guru: %w", dup)) {
		t.Fatal("expected wrapped 1062 to be detected")
	}
	if IsDuplicateKey(&mysql.MySQLError{Number: 1146}) {
		t.Fatal("1146 is not a duplicate key error")
	}
	if IsDuplicateKey(errors.New("boom")) {
		t.Fatal("plain error is not a duplicate key error")
	}
}
