package id

import (
	"fmt"
	"sync"
	"time"

	fid "github.com/amterp/flexid"
)

// Generator produces identifiers unique within a board's ID space.
type Generator interface {
	Generate() string
}

var generator *fid.Generator

func init() {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3)

	generator = fid.MustNewGenerator(config)
}

// Generate returns a new unique ID.
func Generate() string {
	return generator.MustGenerate()
}

// Unique asks gen for IDs until one is not taken. IDs minted within the same
// tick can collide, and the board requires card IDs to be unique.
func Unique(gen Generator, taken func(string) bool) string {
	for {
		candidate := gen.Generate()
		if !taken(candidate) {
			return candidate
		}
	}
}

// FlexID is the default Generator: short, time-ordered IDs with a random suffix.
type FlexID struct{}

func (FlexID) Generate() string {
	return Generate()
}

// Sequence generates predictable IDs ("card-1", "card-2", ...). Used by tests
// and reproducible seeds.
type Sequence struct {
	Prefix string

	mu   sync.Mutex
	next int
}

// NewSequence creates a sequence generator with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

func (s *Sequence) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s-%d", s.Prefix, s.next)
}
