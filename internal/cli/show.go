package cli

import (
	"fmt"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/sprintboard/internal/model"
)

func registerShow(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("show")
	cmd.SetDescription("Print the starting board")

	ctx.ShowUsed, _ = parent.RegisterCmd(cmd)
}

func runShow(o Overrides) {
	app, err := NewApp(o, false)
	if err != nil {
		Fatal(err)
	}
	fmt.Print(renderBoard(app.Boards.Current()))
}

// renderBoard lists the board column by column, cards in order with their
// 1-based positions.
func renderBoard(b model.Board) string {
	var sb strings.Builder

	name := b.Name
	if name == "" {
		name = "Board"
	}
	sb.WriteString(TitleBox(name))
	sb.WriteString("\n")

	for i, col := range b.Columns {
		color := model.ColumnColor(i)
		fmt.Fprintf(&sb, "\n%s %s %s\n",
			ColorSwatch(color),
			RenderColumnColor(col.Title, color),
			RenderMuted(fmt.Sprintf("(%d)", len(col.Cards))))

		if len(col.Cards) == 0 {
			fmt.Fprintf(&sb, "  %s\n", RenderMuted("no cards"))
			continue
		}
		for j, card := range col.Cards {
			fmt.Fprintf(&sb, "  %s %s  %s\n",
				RenderMuted(fmt.Sprintf("%2d.", j+1)), card.Title, RenderID(card.ID))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(LabelValue("Cards", fmt.Sprint(b.CardCount()), 6))
	sb.WriteString("\n")
	return sb.String()
}
