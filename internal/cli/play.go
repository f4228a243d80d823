package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/sprintboard/internal/board"
	kanerr "github.com/amterp/sprintboard/internal/errors"
	"github.com/amterp/sprintboard/internal/id"
	"github.com/amterp/sprintboard/internal/model"
	"github.com/amterp/sprintboard/internal/prompt"
	"github.com/amterp/sprintboard/internal/store"
)

func registerPlay(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("play")
	cmd.SetDescription("Work the board interactively")

	ctx.PlayUsed, _ = parent.RegisterCmd(cmd)
}

func runPlay(o Overrides) {
	app, err := NewApp(o, true)
	if err != nil {
		Fatal(err)
	}

	session := &playSession{
		prompter: app.Prompter,
		boards:   app.Boards,
		counter:  app.Counter,
		ids:      app.IDs,
		out:      os.Stdout,
	}
	if err := session.run(); err != nil {
		Fatal(err)
	}
}

// Menu entries of a play session.
const (
	menuMoveWithin = "Reorder a card within its column"
	menuMoveAcross = "Move a card to another column"
	menuAdd        = "Add a card"
	menuEdit       = "Edit a card"
	menuDelete     = "Delete a card"
	menuCounter    = "Increment the counter"
	menuShow       = "Show the board"
	menuQuit       = "Quit"
)

var menu = []string{
	menuMoveWithin, menuMoveAcross, menuAdd, menuEdit, menuDelete, menuCounter, menuShow, menuQuit,
}

var errEmptyColumn = errors.New("column has no cards")

// playSession drives the board store from prompts. Each menu entry becomes
// one dispatched action.
type playSession struct {
	prompter prompt.Prompter
	boards   *store.BoardStore
	counter  *store.CounterStore
	ids      id.Generator
	out      io.Writer
}

func (s *playSession) run() error {
	fmt.Fprint(s.out, renderBoard(s.boards.Current()))

	for {
		choice, err := s.prompter.Select("What next?", menu)
		if errors.Is(err, prompt.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == menuQuit {
			return nil
		}

		if err := s.step(choice); err != nil {
			switch {
			case errors.Is(err, prompt.ErrAborted):
				// Back to the menu
			case errors.Is(err, prompt.ErrNonInteractive):
				return err
			default:
				fprintStatus(s.out, StyleWarning.Render(IconWarning), "%v", err)
			}
		}
	}
}

func (s *playSession) step(choice string) error {
	switch choice {
	case menuMoveWithin:
		return s.moveWithin()
	case menuMoveAcross:
		return s.moveAcross()
	case menuAdd:
		return s.add()
	case menuEdit:
		return s.edit()
	case menuDelete:
		return s.delete()
	case menuCounter:
		fprintStatus(s.out, StyleSuccess.Render(IconSuccess), "Counter is now %s", RenderBold(strconv.Itoa(s.counter.Increment())))
		return nil
	case menuShow:
		fmt.Fprint(s.out, renderBoard(s.boards.Current()))
		fmt.Fprintln(s.out, LabelValue("Counter", strconv.Itoa(s.counter.Value()), 6))
		return nil
	default:
		return kanerr.InvalidField("choice", fmt.Sprintf("unknown menu entry %q", choice))
	}
}

func (s *playSession) moveWithin() error {
	col, err := s.pickColumn("Which column?")
	if err != nil {
		return err
	}
	from, err := s.pickCard(col)
	if err != nil {
		return err
	}
	to, err := s.pickPosition("New position", len(col.Cards), from)
	if err != nil {
		return err
	}
	return s.dispatch(board.MoveWithin{ColumnID: col.ID, From: from, To: to},
		"Moved %s to position %d", RenderID(col.Cards[from].ID), to+1)
}

func (s *playSession) moveAcross() error {
	src, err := s.pickColumn("Move from which column?")
	if err != nil {
		return err
	}
	from, err := s.pickCard(src)
	if err != nil {
		return err
	}
	dst, err := s.pickColumn("Move to which column?")
	if err != nil {
		return err
	}

	slots := len(dst.Cards) + 1
	if dst.ID == src.ID {
		slots = len(dst.Cards)
	}
	to, err := s.pickPosition("Position in "+dst.Title, slots, slots-1)
	if err != nil {
		return err
	}
	return s.dispatch(board.MoveAcross{SourceColumnID: src.ID, DestinationColumnID: dst.ID, From: from, To: to},
		"Moved %s to %s", RenderID(src.Cards[from].ID), dst.Title)
}

func (s *playSession) add() error {
	col, err := s.pickColumn("Add to which column?")
	if err != nil {
		return err
	}
	title, err := s.prompter.Input("Title", "")
	if err != nil {
		return err
	}

	card := model.Card{ID: id.Unique(s.ids, s.boards.Current().HasCard), Title: strings.TrimSpace(title)}
	return s.dispatch(board.Create{ColumnID: col.ID, Card: card},
		"Added %s to %s", RenderID(card.ID), col.Title)
}

func (s *playSession) edit() error {
	col, err := s.pickColumn("Which column?")
	if err != nil {
		return err
	}
	idx, err := s.pickCard(col)
	if err != nil {
		return err
	}
	card := col.Cards[idx]
	title, err := s.prompter.Input("Title", card.Title)
	if err != nil {
		return err
	}

	card.Title = strings.TrimSpace(title)
	return s.dispatch(board.Edit{ColumnID: col.ID, Card: card}, "Updated %s", RenderID(card.ID))
}

func (s *playSession) delete() error {
	col, err := s.pickColumn("Which column?")
	if err != nil {
		return err
	}
	idx, err := s.pickCard(col)
	if err != nil {
		return err
	}
	card := col.Cards[idx]

	ok, err := s.prompter.Confirm(fmt.Sprintf("Delete %q?", card.Title), false)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return s.dispatch(board.Delete{ColumnID: col.ID, CardID: card.ID}, "Deleted %s", RenderID(card.ID))
}

// dispatch applies a and reports whether the board changed.
func (s *playSession) dispatch(a board.Action, format string, args ...any) error {
	before := s.boards.Current()
	after, err := s.boards.Dispatch(a)
	if err != nil {
		return err
	}
	if reflect.DeepEqual(before, after) {
		fprintStatus(s.out, RenderMuted(IconInfo), "Board unchanged")
		return nil
	}
	fprintStatus(s.out, StyleSuccess.Render(IconSuccess), format, args...)
	return nil
}

func (s *playSession) pickColumn(title string) (model.Column, error) {
	current := s.boards.Current()
	labels := make([]string, len(current.Columns))
	for i, col := range current.Columns {
		labels[i] = fmt.Sprintf("%s (%d)", col.Title, len(col.Cards))
	}

	i, err := s.choose(title, labels)
	if err != nil {
		return model.Column{}, err
	}
	return current.Columns[i], nil
}

func (s *playSession) pickCard(col model.Column) (int, error) {
	if len(col.Cards) == 0 {
		return 0, fmt.Errorf("%s: %w", col.Title, errEmptyColumn)
	}
	labels := make([]string, len(col.Cards))
	for i, card := range col.Cards {
		labels[i] = fmt.Sprintf("%d. %s [%s]", i+1, card.Title, card.ID)
	}
	return s.choose("Which card?", labels)
}

// pickPosition asks for a 1-based position among n slots and returns it
// 0-based. def is the 0-based default.
func (s *playSession) pickPosition(title string, n, def int) (int, error) {
	answer, err := s.prompter.Input(fmt.Sprintf("%s (1-%d)", title, n), strconv.Itoa(def+1))
	if err != nil {
		return 0, err
	}
	pos, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || pos < 1 {
		return 0, kanerr.InvalidField("position", fmt.Sprintf("%q is not a position", answer))
	}
	return pos - 1, nil
}

func (s *playSession) choose(title string, labels []string) (int, error) {
	choice, err := s.prompter.Select(title, labels)
	if err != nil {
		return 0, err
	}
	for i, label := range labels {
		if label == choice {
			return i, nil
		}
	}
	return 0, kanerr.InvalidField("choice", fmt.Sprintf("%q is not an option", choice))
}
