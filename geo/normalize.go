package geo

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync"
)

// Source data and boundary data disagree on a few union-territory names.
// These defaults cover the known mismatches; REGION_ALIASES may point at a
// JSON object of extra "from": "to" pairs, which win over the defaults.
var defaultAliases = map[string]string{
	"andaman and nicobar":                      "andaman & nicobar islands",
	"dadra and nagar haveli and daman and diu": "dadra & nagar haveli & daman & diu",
}

var (
	aliasOnce sync.Once
	aliases   map[string]string
)

// aliasTable defers loading until first use so a REGION_ALIASES value set
// by the .env file is seen.
func aliasTable() map[string]string {
	aliasOnce.Do(func() {
		aliases = loadAliases()
	})
	return aliases
}

func loadAliases() map[string]string {
	merged := make(map[string]string, len(defaultAliases))
	for from, to := range defaultAliases {
		merged[from] = to
	}

	path := os.Getenv("REGION_ALIASES")
	if path == "" {
		return merged
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: could not read region aliases from %s: %v", path, err)
		return merged
	}

	extra := make(map[string]string)
	if err := json.Unmarshal(data, &extra); err != nil {
		log.Printf("Warning: invalid region alias file %s: %v", path, err)
		return merged
	}

	for from, to := range extra {
		merged[strings.ToLower(strings.TrimSpace(from))] = strings.ToLower(strings.TrimSpace(to))
	}
	log.Printf("Loaded %d region aliases from %s", len(extra), path)
	return merged
}

// NormalizeRegion canonicalizes a state or union-territory name so tabular
// data and boundary data join on the same key: trim, lower-case, then apply
// the alias table. Normalizing twice gives the same result.
func NormalizeRegion(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliasTable()[key]; ok {
		return canonical
	}
	return key
}
