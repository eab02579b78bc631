package narrative

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed skeletons/*.json
var skeletonFiles embed.FS

// cache stores parsed skeleton files to avoid repeated JSON parsing
var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a prose skeleton by filename and key.
// The filename should not include the directory (e.g., "brief.json").
func Get(filename, key string) (string, error) {
	skeletons, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	skeleton, exists := skeletons[key]
	if !exists {
		return "", fmt.Errorf("skeleton key %q not found in %s", key, filename)
	}

	return skeleton, nil
}

// MustGet retrieves a skeleton, panicking if it is not found.
func MustGet(filename, key string) string {
	skeleton, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load skeleton: %v", err))
	}
	return skeleton
}

// MustLines retrieves a newline-separated skeleton and returns one entry per line.
func MustLines(filename, key string) []string {
	return strings.Split(MustGet(filename, key), "\n")
}

// Format replaces placeholders in the form {{.Key}} with values from data in a
// single pass. Substituted values are never scanned again, so a value that
// itself contains a placeholder is emitted verbatim.
func Format(template string, data map[string]string) string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// loadFile loads and caches a skeleton file.
func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	if skeletons, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return skeletons, nil
	}
	cacheMu.RUnlock()

	data, err := skeletonFiles.ReadFile("skeletons/" + filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read skeleton file %s: %w", filename, err)
	}

	var skeletons map[string]string
	if err := json.Unmarshal(data, &skeletons); err != nil {
		return nil, fmt.Errorf("failed to parse skeleton file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = skeletons
	cacheMu.Unlock()

	return skeletons, nil
}

// ClearCache clears the skeleton cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}

// List returns all available skeleton keys in a file, sorted.
func List(filename string) ([]string, error) {
	skeletons, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(skeletons))
	for key := range skeletons {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
