package seed

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	kanerr "github.com/amterp/sprintboard/internal/errors"
	"github.com/amterp/sprintboard/internal/id"
	"github.com/amterp/sprintboard/internal/model"
	"github.com/amterp/sprintboard/internal/util"
	"github.com/amterp/sprintboard/internal/version"
)

// Format is a seed file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml", "":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", kanerr.InvalidField("format", fmt.Sprintf("unsupported seed format %q (use toml or yaml)", s))
	}
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", kanerr.InvalidField("seed file", fmt.Sprintf("%s: expected a .toml, .yaml or .yml file", path))
	}
}

// LoadFile reads a seed board from disk. See Decode for how missing IDs are filled.
func LoadFile(path string, gen id.Generator) (model.Board, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return model.Board{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Board{}, &kanerr.NotFoundError{Resource: "seed file", ID: path}
		}
		return model.Board{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	b, err := Decode(data, format, gen)
	if err != nil {
		return model.Board{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// seedFile is the on-disk shape: a board plus the schema it was written for.
type seedFile struct {
	Schema  string         `toml:"schema,omitempty" yaml:"schema,omitempty"`
	Name    string         `toml:"name" yaml:"name"`
	Columns []model.Column `toml:"columns" yaml:"columns"`
}

// Decode parses a seed board. Columns without an ID get the slug of their
// title; cards without an ID get one from gen. The result is validated.
func Decode(data []byte, format Format, gen id.Generator) (model.Board, error) {
	var f seedFile

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return model.Board{}, kanerr.InvalidField("seed", err.Error())
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return model.Board{}, kanerr.InvalidField("seed", err.Error())
		}
	default:
		return model.Board{}, kanerr.InvalidField("format", fmt.Sprintf("unsupported seed format %q", format))
	}

	if err := version.CheckSeedSchema("", f.Schema); err != nil {
		return model.Board{}, err
	}

	b := model.Board{Name: f.Name, Columns: f.Columns}

	if b.Name == "" {
		b.Name = DefaultBoardName
	}
	fillIDs(&b, gen)

	if err := b.Validate(); err != nil {
		return model.Board{}, err
	}
	return b, nil
}

// fillIDs runs before validation, so explicit IDs are collected first and
// generated ones never shadow them.
func fillIDs(b *model.Board, gen id.Generator) {
	taken := make(map[string]bool)
	for _, col := range b.Columns {
		for _, card := range col.Cards {
			if card.ID != "" {
				taken[card.ID] = true
			}
		}
	}
	isTaken := func(s string) bool { return taken[s] }

	for i := range b.Columns {
		col := &b.Columns[i]
		if col.ID == "" {
			col.ID = util.Slugify(col.Title)
		}
		if col.Cards == nil {
			col.Cards = []model.Card{}
		}
		for j := range col.Cards {
			if col.Cards[j].ID == "" {
				cardID := id.Unique(gen, isTaken)
				taken[cardID] = true
				col.Cards[j].ID = cardID
			}
		}
	}
}

// Encode writes b as a seed file stamped with the current schema.
func Encode(w io.Writer, b model.Board, format Format) error {
	f := seedFile{Schema: version.CurrentSeedSchema(), Name: b.Name, Columns: b.Columns}

	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return kanerr.InvalidField("format", fmt.Sprintf("unsupported seed format %q", format))
	}
}
