package board

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amterp/sprintboard/internal/model"
)

// randomAction picks an action against the current board. Indices and IDs are
// sometimes deliberately stale so the no-op paths get exercised too.
func randomAction(rng *rand.Rand, b model.Board, nextID *int) Action {
	colID := func() string {
		if rng.Intn(10) == 0 {
			return "missing"
		}
		return b.Columns[rng.Intn(len(b.Columns))].ID
	}
	index := func(colID string) int {
		i := b.ColumnIndex(colID)
		if i < 0 {
			return rng.Intn(3)
		}
		return rng.Intn(len(b.Columns[i].Cards) + 2)
	}
	cardIn := func(colID string) string {
		i := b.ColumnIndex(colID)
		if i < 0 || len(b.Columns[i].Cards) == 0 || rng.Intn(8) == 0 {
			return "ghost"
		}
		return b.Columns[i].Cards[rng.Intn(len(b.Columns[i].Cards))].ID
	}

	switch rng.Intn(6) {
	case 0:
		c := colID()
		return MoveWithin{ColumnID: c, From: index(c), To: index(c)}
	case 1:
		src, dst := colID(), colID()
		return MoveAcross{SourceColumnID: src, DestinationColumnID: dst, From: index(src), To: index(dst)}
	case 2:
		*nextID++
		return Create{ColumnID: colID(), Card: model.Card{ID: fmt.Sprintf("new-%d", *nextID), Title: "new"}}
	case 3:
		c := colID()
		return Edit{ColumnID: c, Card: model.Card{ID: cardIn(c), Title: fmt.Sprintf("edited-%d", rng.Int())}}
	case 4:
		c := colID()
		return Delete{ColumnID: c, CardID: cardIn(c)}
	default:
		if rng.Intn(4) == 0 {
			return Drag{Gesture: Cancelled{}}
		}
		src, dst := colID(), colID()
		return Drag{Gesture: Drop{SourceColumnID: src, DestinationColumnID: dst, FromIndex: index(src), ToIndex: index(dst)}}
	}
}

func sortedCardIDs(b model.Board) []string {
	ids := b.CardIDs()
	sort.Strings(ids)
	return ids
}

func TestProperties_RandomSequences(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			initial := testBoard()
			b := initial
			nextID := 0

			expected := map[string]int{}
			for _, id := range initial.CardIDs() {
				expected[id]++
			}

			for step := 0; step < 200; step++ {
				before := deepCopy(b)
				a := randomAction(rng, b, &nextID)
				after := Reduce(b, a)

				// Inputs are never written to.
				require.Equal(t, before, b, "step %d: %s modified its input", step, a.Name())

				// Track which IDs should be present.
				switch a := a.(type) {
				case Create:
					if b.HasColumn(a.ColumnID) {
						expected[a.Card.ID]++
					}
				case Delete:
					if i := b.ColumnIndex(a.ColumnID); i >= 0 && b.Columns[i].CardIndex(a.CardID) >= 0 {
						expected[a.CardID]--
						if expected[a.CardID] == 0 {
							delete(expected, a.CardID)
						}
					}
				}

				require.Equal(t, initial.ColumnIDs(), after.ColumnIDs(), "step %d: column set changed", step)
				require.NoError(t, after.Validate(), "step %d: invariants broken by %s", step, a.Name())

				got := map[string]int{}
				for _, id := range after.CardIDs() {
					got[id]++
				}
				require.Equal(t, expected, got, "step %d: card multiset drifted after %s", step, a.Name())

				b = after
			}
		})
	}
}

func TestProperties_MovesPreserveCardSet(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := testBoard()
	want := sortedCardIDs(b)

	for i := 0; i < 500; i++ {
		src := b.Columns[rng.Intn(len(b.Columns))]
		dst := b.Columns[rng.Intn(len(b.Columns))]
		if len(src.Cards) == 0 {
			continue
		}
		from := rng.Intn(len(src.Cards))
		to := rng.Intn(len(dst.Cards) + 1)
		if src.ID == dst.ID {
			to = rng.Intn(len(src.Cards))
		}
		b = MoveAcrossColumns(b, src.ID, dst.ID, from, to)
	}

	assert.Equal(t, want, sortedCardIDs(b))
}

func TestProperties_EditAndDeleteMissReturnEqualBoard(t *testing.T) {
	b := testBoard()

	for _, col := range b.Columns {
		assert.Equal(t, b, EditCard(b, col.ID, model.Card{ID: "nope", Title: "x"}))
		assert.Equal(t, b, DeleteCard(b, col.ID, "nope"))
	}
}
