package board

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/services/validation"
	"github.com/thenoetrevino/kanboard/internal/testutil"
	"github.com/thenoetrevino/kanboard/internal/types"
)

func setupService(t *testing.T) (Service, *testutil.RecordingPublisher) {
	t.Helper()
	pub := testutil.NewRecordingPublisher()
	return NewService(testutil.SetupTestRepo(t), pub), pub
}

func TestCreateBoard(t *testing.T) {
	svc, pub := setupService(t)
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, CreateBoardRequest{Name: "  Roadmap  ", Description: "Q3"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if board.Name != "Roadmap" {
		t.Errorf("Expected trimmed name 'Roadmap', got %q", board.Name)
	}
	if board.ID == "" {
		t.Error("Expected board ID to be set")
	}

	snap, err := svc.LoadBoard(ctx, board.ID, nil)
	if err != nil {
		t.Fatalf("LoadBoard failed: %v", err)
	}
	if len(snap.Columns) != len(models.DefaultBoardColumns) {
		t.Errorf("Expected %d seeded columns, got %d", len(models.DefaultBoardColumns), len(snap.Columns))
	}

	if got := pub.BoardsChanged(); len(got) != 1 || got[0] != board.ID {
		t.Errorf("Expected one event for %s, got %v", board.ID, got)
	}
}

func TestCreateBoard_Validation(t *testing.T) {
	svc, pub := setupService(t)

	tests := []struct {
		name    string
		req     CreateBoardRequest
		wantErr error
	}{
		{name: "empty", req: CreateBoardRequest{Name: ""}, wantErr: ErrEmptyName},
		{name: "blank", req: CreateBoardRequest{Name: "   "}, wantErr: ErrEmptyName},
		{name: "too long", req: CreateBoardRequest{Name: strings.Repeat("x", 256)}, wantErr: ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBoard(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, validation.ErrInvalid) {
				t.Errorf("Expected a validation error, got %v", err)
			}
		})
	}

	if len(pub.Events()) != 0 {
		t.Errorf("No events expected after failed validation, got %v", pub.Events())
	}
}

func TestGetAllBoards(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, name := range []string{"One", "Two"} {
		if _, err := svc.CreateBoard(ctx, CreateBoardRequest{Name: name}); err != nil {
			t.Fatalf("CreateBoard(%s) failed: %v", name, err)
		}
	}

	boards, err := svc.GetAllBoards(ctx)
	if err != nil {
		t.Fatalf("GetAllBoards failed: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("Expected 2 boards, got %d", len(boards))
	}
}

func TestUpdateBoard(t *testing.T) {
	svc, pub := setupService(t)
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, CreateBoardRequest{Name: "Old", Description: "keep"})
	if err != nil {
		t.Fatal(err)
	}
	pub.Reset()

	name := "New"
	if err := svc.UpdateBoard(ctx, UpdateBoardRequest{ID: board.ID, Name: &name}); err != nil {
		t.Fatalf("UpdateBoard failed: %v", err)
	}

	got, err := svc.GetBoardByID(ctx, board.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "New" || got.Description != "keep" {
		t.Errorf("Unexpected board after update: %+v", got)
	}
	if len(pub.Events()) != 1 {
		t.Errorf("Expected one event, got %d", len(pub.Events()))
	}

	blank := " "
	if err := svc.UpdateBoard(ctx, UpdateBoardRequest{ID: board.ID, Name: &blank}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	if err := svc.UpdateBoard(ctx, UpdateBoardRequest{ID: "missing", Name: &name}); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("Expected ErrBoardNotFound, got %v", err)
	}
}

func TestDeleteBoard(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	board, err := svc.CreateBoard(ctx, CreateBoardRequest{Name: "Doomed"})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteBoard(ctx, board.ID); err != nil {
		t.Fatalf("DeleteBoard failed: %v", err)
	}
	if _, err := svc.GetBoardByID(ctx, board.ID); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("Expected ErrBoardNotFound, got %v", err)
	}
	if err := svc.DeleteBoard(ctx, board.ID); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("Deleting twice: expected ErrBoardNotFound, got %v", err)
	}
}

func TestInvalidBoardID(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.GetBoardByID(ctx, ""); !errors.Is(err, ErrInvalidBoardID) {
		t.Errorf("GetBoardByID: expected ErrInvalidBoardID, got %v", err)
	}
	if _, err := svc.LoadBoard(ctx, types.BoardID(""), nil); !errors.Is(err, ErrInvalidBoardID) {
		t.Errorf("LoadBoard: expected ErrInvalidBoardID, got %v", err)
	}
	if err := svc.DeleteBoard(ctx, ""); !errors.Is(err, ErrInvalidBoardID) {
		t.Errorf("DeleteBoard: expected ErrInvalidBoardID, got %v", err)
	}
}
