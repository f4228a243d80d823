package version

import (
	"fmt"
)

// SchemaVersionError indicates a seed file written for a schema this build
// cannot read.
type SchemaVersionError struct {
	FilePath    string // Path to the problematic file, empty when decoding bytes
	Found       string // What was found (e.g., "seed/2", "v2")
	Expected    string // What was expected (e.g., "seed/1")
	MinRequired string // Minimum release required (if upgrade needed)
}

func (e *SchemaVersionError) Error() string {
	where := ""
	if e.FilePath != "" {
		where = fmt.Sprintf(" (file: %s)", e.FilePath)
	}
	if e.MinRequired != "" {
		return fmt.Sprintf(
			"seed schema %s requires sprintboard >= %s, this build supports up to %s%s",
			e.Found, e.MinRequired, e.Expected, where,
		)
	}
	return fmt.Sprintf("invalid seed schema: found %q, expected %s%s", e.Found, e.Expected, where)
}

// InvalidSeedSchema creates an error for a seed file with an unsupported schema.
func InvalidSeedSchema(path, found string) error {
	e := &SchemaVersionError{
		FilePath: path,
		Found:    found,
		Expected: CurrentSeedSchema(),
	}
	// Check if it's a future version
	if v, err := ParseSeedVersion(found); err == nil && v > CurrentSeedVersion {
		if minVersion, ok := MinSprintboardVersion[found]; ok {
			e.MinRequired = minVersion
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}
