package seed

import (
	"math/rand"

	"github.com/amterp/sprintboard/internal/id"
	"github.com/amterp/sprintboard/internal/model"
	"github.com/amterp/sprintboard/internal/util"
)

// DefaultBoardName is the name shown above the sample board.
const DefaultBoardName = "Sprint #1"

// TaskNames is the pool sample card titles are drawn from.
var TaskNames = []string{
	"Set up development environment",
	"Create component structure",
	"Implement basic routing",
	"Design task board layout",
	"Add drag-and-drop functionality for cards",
	"Develop notification system",
	"Integrate user authentication",
	"Connect Google API for OAuth",
	"Implement task filtering by status",
	"Add tagging functionality",
	"Develop task prioritization system",
	"Integrate third-party analytics API",
	"Set up automatic data saving",
	"Create user roles system",
	"Add comments to tasks",
	"Integrate external file storage",
	"Enable public boards functionality",
	"Develop mobile interface version",
	"Add push notifications",
	"Optimize application performance",
	"Implement board archiving functionality",
	"Develop import/export data feature",
	"Create dark mode for interface",
	"Add card copying functionality",
	"Integrate Jira data migration",
	"Create task charts and graphs",
	"Implement search functionality for tasks",
	"Develop quick task evaluation widget",
	"Add deadlines feature for cards",
	"Set up automatic data backups",
	"Add multi-language support",
	"Create board customization system",
	"Integrate with Slack for task updates",
	"Add task change history tracking",
	"Create “My Tasks” page for users",
	"Develop API for external system integration",
	"Create statistics for completed tasks",
	"Implement bulk card movement system",
	"Add task subscription functionality",
	"Connect Google Analytics for tracking",
	"Develop user documentation",
	"Integrate calendar sync for deadlines",
	"Add task recovery from trash functionality",
	"Develop “Reports and Analysis” section",
	"Create admin panel for user management",
	"Implement multi-level subtask system",
	"Integrate GitHub sync for task tracking",
	"Optimize database for large datasets",
	"Create metrics system to track productivity",
	"Add task grouping by category functionality",
}

// SampleColumn is a column of the sample board and how many cards it starts with.
type SampleColumn struct {
	Title string
	Cards int
}

// SampleColumns is the layout of the sample board.
var SampleColumns = []SampleColumn{
	{Title: "To Do", Cards: 15},
	{Title: "In Progress", Cards: 4},
	{Title: "Done", Cards: 30},
}

// Random builds the sample board with titles drawn from TaskNames.
// Column IDs are slugs of the titles; card IDs come from gen.
func Random(rng *rand.Rand, gen id.Generator) model.Board {
	taken := make(map[string]bool)
	isTaken := func(s string) bool { return taken[s] }

	b := model.Board{Name: DefaultBoardName, Columns: make([]model.Column, len(SampleColumns))}
	for i, sc := range SampleColumns {
		cards := make([]model.Card, sc.Cards)
		for j := range cards {
			cardID := id.Unique(gen, isTaken)
			taken[cardID] = true
			cards[j] = model.Card{ID: cardID, Title: TaskNames[rng.Intn(len(TaskNames))]}
		}
		b.Columns[i] = model.Column{ID: util.Slugify(sc.Title), Title: sc.Title, Cards: cards}
	}
	return b
}
