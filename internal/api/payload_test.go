package api

import (
	"testing"

	"github.com/amterp/sprintboard/internal/board"
	kanerr "github.com/amterp/sprintboard/internal/errors"
)

func TestDecodeDragEnd(t *testing.T) {
	tests := []struct {
		name string
		body string
		want board.Gesture
	}{
		{
			name: "drop across columns",
			body: `{"draggableId":"a","reason":"DROP","source":{"droppableId":"todo","index":0},"destination":{"droppableId":"done","index":3}}`,
			want: board.Drop{SourceColumnID: "todo", DestinationColumnID: "done", FromIndex: 0, ToIndex: 3},
		},
		{
			name: "reason omitted",
			body: `{"source":{"droppableId":"todo","index":1},"destination":{"droppableId":"todo","index":0}}`,
			want: board.Drop{SourceColumnID: "todo", DestinationColumnID: "todo", FromIndex: 1, ToIndex: 0},
		},
		{
			name: "null destination",
			body: `{"source":{"droppableId":"todo","index":1},"destination":null}`,
			want: board.Cancelled{},
		},
		{
			name: "missing destination",
			body: `{"source":{"droppableId":"todo","index":1}}`,
			want: board.Cancelled{},
		},
		{
			name: "cancel reason wins over destination",
			body: `{"reason":"CANCEL","source":{"droppableId":"todo","index":1},"destination":{"droppableId":"done","index":0}}`,
			want: board.Cancelled{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeDragEnd([]byte(tt.body))
			if err != nil {
				t.Fatalf("decodeDragEnd failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeDragEnd_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ``},
		{"string", `"drop"`},
		{"index as string", `{"source":{"droppableId":"todo","index":"0"}}`},
		{"destination missing index", `{"source":{"droppableId":"todo","index":0},"destination":{"droppableId":"done"}}`},
		{"droppable not a string", `{"source":{"droppableId":7,"index":0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeDragEnd([]byte(tt.body))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !kanerr.IsValidationError(err) {
				t.Errorf("Expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}
