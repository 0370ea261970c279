// migrate copies the completion set between progress stores, for example
// from the default JSON file to sqlite or PostgreSQL.
//
// Usage:
//
//	go run ./scripts/migrate -from file:minbar-progress.json -to sqlite:minbar.db
//	go run ./scripts/migrate -from file:minbar-progress.json -to postgres
//
// "postgres" without a DSN reads POSTGRES_URI. The value is validated as a
// JSON array of sermon ids before it is written.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/minbar-sermons-api/internal/config"
	"github.com/minbar-sermons-api/internal/progress"
	"github.com/minbar-sermons-api/internal/repository"
	"github.com/minbar-sermons-api/internal/repository/filestore"
	"github.com/minbar-sermons-api/internal/repository/sqlstore"
)

func main() {
	from := flag.String("from", "", "Source store: file:PATH, sqlite:PATH or postgres[:DSN]")
	to := flag.String("to", "", "Destination store, same format as -from")
	key := flag.String("key", progress.DefaultKey, "Storage key to copy")
	flag.Parse()

	// Load environment variables
	godotenv.Load()

	if *from == "" || *to == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	src, err := openStore(ctx, *from)
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}
	defer src.Close()

	dst, err := openStore(ctx, *to)
	if err != nil {
		log.Fatalf("Failed to open destination: %v", err)
	}
	defer dst.Close()

	value, ok, err := src.Get(ctx, *key)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *key, err)
	}
	if !ok {
		log.Printf("Nothing stored under %s, nothing to migrate", *key)
		return
	}

	var ids []int
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		log.Fatalf("Source value for %s is not a list of ids: %v", *key, err)
	}

	if err := dst.Set(ctx, *key, value); err != nil {
		log.Fatalf("Failed to write %s: %v", *key, err)
	}
	log.Printf("Migrated %d completed sermons from %s to %s", len(ids), *from, *to)
}

func openStore(ctx context.Context, spec string) (repository.KeyValueStore, error) {
	kind, dsn, _ := strings.Cut(spec, ":")
	switch kind {
	case "file":
		return filestore.New(dsn)
	case sqlstore.DriverSQLite:
		return sqlstore.Open(ctx, sqlstore.DriverSQLite, dsn)
	case sqlstore.DriverPostgres:
		if dsn == "" {
			dsn = config.GetConfig().PostgresURI
		}
		return sqlstore.Open(ctx, sqlstore.DriverPostgres, dsn)
	default:
		return nil, fmt.Errorf("unknown store %q", spec)
	}
}
