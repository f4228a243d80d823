package version

import (
	"fmt"
	"strconv"
	"strings"
)

// CurrentSeedVersion is the seed file schema version this build writes.
// Bump it when a seed file change would be misread by older builds, and add
// the release that introduced it to MinSprintboardVersion.
const CurrentSeedVersion = 1

// SeedSchemaPrefix prefixes the schema field of seed files.
const SeedSchemaPrefix = "seed/"

// MinSprintboardVersion maps schema identifiers to the minimum release
// required. Used to provide helpful upgrade messages when encountering newer schemas.
var MinSprintboardVersion = map[string]string{
	"seed/1": "0.1.0",
}

// FormatSeedSchema creates a seed schema string from a version number.
// Example: FormatSeedSchema(1) returns "seed/1"
func FormatSeedSchema(v int) string {
	return fmt.Sprintf("%s%d", SeedSchemaPrefix, v)
}

// CurrentSeedSchema returns the current seed schema string.
func CurrentSeedSchema() string {
	return FormatSeedSchema(CurrentSeedVersion)
}

// ParseSeedVersion extracts the version number from a seed schema string.
func ParseSeedVersion(schema string) (int, error) {
	if !strings.HasPrefix(schema, SeedSchemaPrefix) {
		return 0, fmt.Errorf("invalid seed schema format: %q (expected %sN)", schema, SeedSchemaPrefix)
	}
	versionStr := strings.TrimPrefix(schema, SeedSchemaPrefix)
	v, err := strconv.Atoi(versionStr)
	if err != nil {
		return 0, fmt.Errorf("invalid seed schema version: %q", versionStr)
	}
	if v < 1 {
		return 0, fmt.Errorf("invalid seed schema version: %d (must be >= 1)", v)
	}
	return v, nil
}

// CheckSeedSchema accepts an empty schema (hand-written seeds) and any
// version up to the current one.
func CheckSeedSchema(path, schema string) error {
	if schema == "" {
		return nil
	}
	v, err := ParseSeedVersion(schema)
	if err != nil {
		return InvalidSeedSchema(path, schema)
	}
	if v > CurrentSeedVersion {
		return InvalidSeedSchema(path, schema)
	}
	return nil
}
