package model

// ColumnColors is the palette used when showing columns in the terminal.
// Colors cycle by column position.
var ColumnColors = []string{
	"#6b7280", // gray
	"#3b82f6", // blue
	"#f59e0b", // amber
	"#10b981", // green
	"#9333ea", // purple
	"#ec4899", // pink
	"#ef4444", // red
	"#06b6d4", // cyan
}

// ColumnColor returns the display color for the column at the given position.
func ColumnColor(position int) string {
	if position < 0 {
		position = -position
	}
	return ColumnColors[position%len(ColumnColors)]
}
