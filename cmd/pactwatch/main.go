// pactwatch tracks confidentiality and contract documents from the command
// line: structured records per contract, edits, and expiring-soon alerts.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pactwatch/pactwatch/pkg/config"
	"github.com/pactwatch/pactwatch/pkg/kv"
	"github.com/pactwatch/pactwatch/pkg/store"
)

// Dispatcher
func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the entrypoint for testing.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)
		return 2
	}

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	switch args[1] {
	case "list":
		return runList(cfg, args[2:], stdout, stderr)
	case "show":
		return runShow(cfg, args[2:], stdout, stderr)
	case "add":
		return runAdd(cfg, args[2:], stdout, stderr)
	case "edit":
		return runEdit(cfg, args[2:], stdout, stderr)
	case "delete":
		return runDelete(cfg, args[2:], stdout, stderr)
	case "alerts":
		return runAlerts(cfg, args[2:], stdout, stderr)
	case "import":
		return runImport(cfg, args[2:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprint(w, `Usage: pactwatch <command> [flags]

Commands:
  list               List tracked contracts
  show <id>          Show one contract in full
  add [flags]        Add a contract from field flags
  edit <id> [flags]  Replace a contract's fields
  delete <id>        Delete a contract
  alerts             Show contracts expiring within the horizon
  import <file>      Extract a draft from a document file
  help               Show this help
`)
}

// openStore builds the configured key/value medium and loads the contract
// collection through it.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, func(), error) {
	closer := func() {}
	var medium kv.Store
	switch cfg.Storage {
	case config.StorageMemory:
		medium = kv.NewMemory()
	case config.StorageFile:
		file, err := kv.NewFile(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		medium = file
	case config.StorageSQLite:
		sqlite, err := kv.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		medium = sqlite
		closer = func() { _ = sqlite.Close() }
	case config.StorageRedis:
		redis := kv.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		medium = redis
		closer = func() { _ = redis.Close() }
	case config.StorageS3:
		s3, err := kv.NewS3(ctx, kv.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Prefix:   cfg.S3Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		medium = s3
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
	return store.Open(ctx, medium), closer, nil
}
