// Command chunkcache reads and writes chunked JSON values in Redis.
//
//	chunkcache [-config file.yaml] [-v] get KEY [DEFAULT_JSON]
//	chunkcache [-config file.yaml] [-v] set KEY JSON|-
//	chunkcache [-config file.yaml] [-v] mset KEY=JSON...
//
// The connection target comes from REDIS_URL unless the config file names one.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/unkn0wn-root/chunkcache"
	"github.com/unkn0wn-root/chunkcache/codec"
	"github.com/unkn0wn-root/chunkcache/config"
	cslog "github.com/unkn0wn-root/chunkcache/log/slog"
)

var errUsage = errors.New("usage: chunkcache [-config file] [-v] get|set|mset ...")

func main() {
	configPath := flag.String("config", "", "YAML config file (environment overrides it)")
	verbose := flag.Bool("v", false, "log debug events to stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, *configPath, *verbose, flag.Args(), os.Stdin, os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, verbose bool, args []string, stdin io.Reader, stdout io.Writer) (err error) {
	if len(args) < 2 {
		return errUsage
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := cslog.New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cache, err := chunkcache.NewFromConfig[any](cfg, codec.JSON[any]{}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cache.Close(ctx); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()

	return dispatch(ctx, cache, args, stdin, stdout)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.FromEnv()
	}
	return config.Load(path)
}

func dispatch(ctx context.Context, cache chunkcache.Cache[any], args []string, stdin io.Reader, stdout io.Writer) error {
	switch cmd, rest := args[0], args[1:]; cmd {
	case "get":
		if len(rest) > 2 {
			return errUsage
		}
		var def any
		if len(rest) > 1 {
			if err := json.Unmarshal([]byte(rest[1]), &def); err != nil {
				return fmt.Errorf("default: %w", err)
			}
		}
		v, err := cache.Get(ctx, rest[0], def)
		if err != nil {
			return err
		}
		return json.NewEncoder(stdout).Encode(v)

	case "set":
		if len(rest) != 2 {
			return errUsage
		}
		raw := []byte(rest[1])
		if rest[1] == "-" {
			b, err := io.ReadAll(stdin)
			if err != nil {
				return err
			}
			raw = b
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("value: %w", err)
		}
		return cache.Set(ctx, rest[0], v)

	case "mset":
		values := make(map[string]any, len(rest))
		for _, kv := range rest {
			k, raw, ok := strings.Cut(kv, "=")
			if !ok || k == "" {
				return fmt.Errorf("mset: expected KEY=JSON, got %q", kv)
			}
			var v any
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return fmt.Errorf("mset %q: %w", k, err)
			}
			values[k] = v
		}
		return cache.MSet(ctx, values)

	default:
		return errUsage
	}
}
