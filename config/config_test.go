package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvRedisURL, EnvChunkSize, EnvNamespace, EnvMaxValueSize} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunkcache.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.RedisURL != DefaultRedisURL || cfg.ChunkSize != 0 || cfg.Namespace != "" || cfg.MaxValueSize != 0 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRedisURL, "redis://cache:6380/2")
	t.Setenv(EnvChunkSize, "4096")
	t.Setenv(EnvNamespace, "reports")
	t.Setenv(EnvMaxValueSize, "1048576")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	want := Config{RedisURL: "redis://cache:6380/2", ChunkSize: 4096, Namespace: "reports", MaxValueSize: 1 << 20}
	if *cfg != want {
		t.Fatalf("cfg = %+v, want %+v", *cfg, want)
	}
}

// useDotEnv points DotEnvFile at a temp file holding body and unsets the
// variables it names so the file can supply them.
func useDotEnv(t *testing.T, body string, unset ...string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	prev := DotEnvFile
	DotEnvFile = path
	t.Cleanup(func() { DotEnvFile = prev })
	for _, k := range unset {
		t.Setenv(k, "") // restores the original value on cleanup
		os.Unsetenv(k)
	}
}

func TestFromEnvReadsDotEnv(t *testing.T) {
	clearEnv(t)
	useDotEnv(t, "REDIS_URL=redis://dotenv:6379/1\nCHUNKCACHE_CHUNK_SIZE=512\n", EnvRedisURL, EnvChunkSize)
	t.Setenv(EnvNamespace, "from-process")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.RedisURL != "redis://dotenv:6379/1" || cfg.ChunkSize != 512 || cfg.Namespace != "from-process" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestDotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	clearEnv(t)
	useDotEnv(t, "REDIS_URL=redis://dotenv:6379/1\n")
	t.Setenv(EnvRedisURL, "redis://process:6379/0")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.RedisURL != "redis://process:6379/0" {
		t.Fatalf("RedisURL = %q, want process value", cfg.RedisURL)
	}
}

func TestMissingDotEnvIgnored(t *testing.T) {
	clearEnv(t)
	prev := DotEnvFile
	DotEnvFile = filepath.Join(t.TempDir(), "absent.env")
	t.Cleanup(func() { DotEnvFile = prev })

	if _, err := FromEnv(); err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
}

func TestFromEnvRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvChunkSize, "big")
	if _, err := FromEnv(); err == nil || !strings.Contains(err.Error(), EnvChunkSize) {
		t.Fatalf("err = %v, want parse error naming %s", err, EnvChunkSize)
	}

	t.Setenv(EnvChunkSize, "-1")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("negative chunk size accepted")
	}
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
redisUrl: redis://file:6379/0
chunkSize: 1000
namespace: from-file
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RedisURL != "redis://file:6379/0" || cfg.ChunkSize != 1000 || cfg.Namespace != "from-file" {
		t.Fatalf("cfg = %+v", cfg)
	}

	t.Setenv(EnvChunkSize, "50")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ChunkSize != 50 || cfg.Namespace != "from-file" {
		t.Fatalf("env override not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.HasPrefix(err.Error(), "read config") {
		t.Fatalf("missing file err = %v", err)
	}
	if _, err := Load(writeConfig(t, "chunkSize: [")); err == nil || !strings.HasPrefix(err.Error(), "parse config") {
		t.Fatalf("bad yaml err = %v", err)
	}
	if _, err := Load(writeConfig(t, "maxValueSize: -5")); err == nil || !strings.HasPrefix(err.Error(), "validate config") {
		t.Fatalf("invalid value err = %v", err)
	}
}
