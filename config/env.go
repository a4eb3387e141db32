package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

const (
	defaultFeedURL       = "https://docs.google.com/spreadsheets/d/CHANGE-ME/gviz/tq?tqx=out:json"
	defaultFeedColumns   = "id,name,category,price,description,image"
	defaultOrderSuccess  = "status" // "status" → {"status":"ok"} | "flag" → {"success":true}
	defaultCartDriver    = "file"
	defaultCartSlotPath  = "storage/cart.json"
	defaultRedisAddr     = "localhost:6379"
	defaultAppPort       = "8080"
	defaultAppEnv        = "local"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"FEED_URL":           defaultFeedURL,
		"FEED_PREFIX_LEN":    "47",
		"FEED_SUFFIX_LEN":    "2",
		"FEED_COLUMNS":       defaultFeedColumns,
		"FEED_CACHE_TTL":     "60",
		"ORDER_URL":          "",
		"ORDER_SUCCESS_MODE": defaultOrderSuccess,
		"CART_DRIVER":        defaultCartDriver,
		"CART_SLOT_PATH":     defaultCartSlotPath,
		"REDIS_ADDR":         defaultRedisAddr,
		"REDIS_PASSWORD":     "",
		"APP_PORT":           defaultAppPort,
		"APP_ENV":            defaultAppEnv,
		"MONGO_URI":          "",
		"MIRROR_IMAGES":      "false",
		"STORAGE_DISK":       "local",
		"STORAGE_LOCAL_ROOT": "storage",
		"STORAGE_URL":        "http://localhost:8080/storage",
	}
}

// ── Feed ─────────────────────────────────────────────────────────────────────

// FeedURL is the spreadsheet feed endpoint (gviz JSON export).
func FeedURL() string {
	_ = Load()
	return get("FEED_URL", defaultFeedURL)
}

// FeedPrefixLen and FeedSuffixLen describe the wrapper bytes around the feed
// payload. The Google gviz export pads its JSON with a 47-byte JS prologue
// and a 2-byte epilogue; other deployments vary, so both are configurable.
func FeedPrefixLen() int { return getInt("FEED_PREFIX_LEN", 47) }

func FeedSuffixLen() int { return getInt("FEED_SUFFIX_LEN", 2) }

// FeedColumns is the positional column layout of the feed, comma-separated.
// Observed sheets disagree on ordering (id-first vs name-first), so the
// mapping is configuration, never a constant.
func FeedColumns() []string {
	_ = Load()
	raw := get("FEED_COLUMNS", defaultFeedColumns)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.ToLower(strings.TrimSpace(p)))
	}
	return out
}

// FeedCacheTTL is the cache lifetime for raw feed text, in seconds.
// Zero disables caching.
func FeedCacheTTL() int { return getInt("FEED_CACHE_TTL", 60) }

// ── Orders ───────────────────────────────────────────────────────────────────

func OrderURL() string {
	_ = Load()
	return get("ORDER_URL", "")
}

// OrderSuccessMode selects how the order endpoint signals success:
// "status" expects {"status":"ok"}, "flag" expects {"success":true}.
func OrderSuccessMode() string {
	_ = Load()
	mode := strings.ToLower(get("ORDER_SUCCESS_MODE", defaultOrderSuccess))
	switch mode {
	case "status", "flag":
		return mode
	default:
		return defaultOrderSuccess
	}
}

// ── Cart persistence ─────────────────────────────────────────────────────────

// CartDriver selects the slot driver: "file" or "redis".
func CartDriver() string {
	_ = Load()
	driver := strings.ToLower(get("CART_DRIVER", defaultCartDriver))
	switch driver {
	case "file", "redis":
		return driver
	default:
		return defaultCartDriver
	}
}

func CartSlotPath() string {
	_ = Load()
	return get("CART_SLOT_PATH", defaultCartSlotPath)
}

// ── Infrastructure ───────────────────────────────────────────────────────────

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func MongoURI() string {
	_ = Load()
	return get("MONGO_URI", "")
}

// ── Storage (image mirror) ───────────────────────────────────────────────────

func MirrorImages() bool {
	_ = Load()
	return get("MIRROR_IMAGES", "false") == "true"
}

func StorageDisk() string      { _ = Load(); return get("STORAGE_DISK", "local") }
func StorageLocalRoot() string { _ = Load(); return get("STORAGE_LOCAL_ROOT", "storage") }
func StorageURL() string       { _ = Load(); return get("STORAGE_URL", "http://localhost:8080/storage") }

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// ── File loading ─────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func getInt(key string, fallback int) int {
	_ = Load()
	n, err := strconv.Atoi(get(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return n
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and config/app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a single key in-process. Intended for tests and CLI flags.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}
