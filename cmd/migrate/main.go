package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/meditrack/backend/internal/infrastructure/config"
	"github.com/meditrack/backend/internal/infrastructure/logger"
	"github.com/meditrack/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const usage = `Usage: migrate [flags] <command>

Commands:
  up              apply all pending migrations
  down            roll back all migrations
  steps <n>       apply n migrations (negative rolls back)
  version         print the current schema version
  force <v>       set the schema version without migrating
  create <name>   create a new migration file pair
  list            list available migrations

Flags:
`

func main() {
	path := flag.String("path", "migrations", "directory holding the migration files")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// create and list work without a database connection
	switch command {
	case "create":
		if flag.NArg() < 2 {
			log.Fatal("create requires a migration name")
		}
		name := flag.Arg(1)
		mf, err := migration.CreateMigration(*path, name, name)
		if err != nil {
			log.Fatal("failed to create migration", zap.Error(err))
		}
		log.Info("migration created",
			zap.String("up", mf.UpPath),
			zap.String("down", mf.DownPath))
		return
	case "list":
		names, err := migration.ListMigrations(*path)
		if err != nil {
			log.Fatal("failed to list migrations", zap.Error(err))
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	if cfg.Database.Driver != "postgres" {
		log.Fatal("versioned migrations only apply to the postgres driver",
			zap.String("driver", cfg.Database.Driver))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := migration.New(db, *path, log)
	if err != nil {
		log.Fatal("failed to create migrator", zap.Error(err))
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Error("error closing migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		if flag.NArg() < 2 {
			log.Fatal("steps requires a count")
		}
		n, parseErr := strconv.Atoi(flag.Arg(1))
		if parseErr != nil {
			log.Fatal("invalid step count", zap.String("arg", flag.Arg(1)))
		}
		err = migrator.Steps(n)
	case "version":
		version, dirty, verErr := migrator.Version()
		if verErr != nil {
			log.Fatal("failed to read version", zap.Error(verErr))
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
		return
	case "force":
		if flag.NArg() < 2 {
			log.Fatal("force requires a version")
		}
		v, parseErr := strconv.Atoi(flag.Arg(1))
		if parseErr != nil {
			log.Fatal("invalid version", zap.String("arg", flag.Arg(1)))
		}
		err = migrator.Force(v)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal("migration command failed", zap.Error(err))
	}
}
