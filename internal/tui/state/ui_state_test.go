package state

import "testing"

func TestUIState_ResizeSetsViewport(t *testing.T) {
	s := NewUIState(30)
	s.Resize(100, 40)

	if got := s.ViewportSize(); got != 3 {
		t.Errorf("ViewportSize() = %d, want 3", got)
	}

	s.Resize(10, 40)
	if got := s.ViewportSize(); got != 1 {
		t.Errorf("ViewportSize() = %d, want at least 1", got)
	}
}

func TestUIState_SelectScrollsViewport(t *testing.T) {
	s := NewUIState(30)
	s.Resize(60, 40) // two columns visible

	s.Select(3, 0)
	if got := s.ViewportOffset(); got != 2 {
		t.Errorf("after selecting column 3, ViewportOffset() = %d, want 2", got)
	}

	s.Select(0, 0)
	if got := s.ViewportOffset(); got != 0 {
		t.Errorf("after selecting column 0, ViewportOffset() = %d, want 0", got)
	}
}

func TestUIState_Clamp(t *testing.T) {
	tests := []struct {
		name       string
		column     int
		task       int
		counts     []int
		wantColumn int
		wantTask   int
	}{
		{"inside", 1, 1, []int{0, 3}, 1, 1},
		{"task past end", 1, 5, []int{0, 3}, 1, 2},
		{"column removed", 4, 0, []int{0, 3}, 1, 0},
		{"empty column", 1, 2, []int{2, 0}, 1, 0},
		{"no columns", 2, 2, nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewUIState(30)
			s.Select(tt.column, tt.task)
			s.Clamp(tt.counts)

			if s.SelectedColumn() != tt.wantColumn || s.SelectedTask() != tt.wantTask {
				t.Errorf("got (%d, %d), want (%d, %d)",
					s.SelectedColumn(), s.SelectedTask(), tt.wantColumn, tt.wantTask)
			}
		})
	}
}

func TestMode(t *testing.T) {
	if !AddTaskMode.IsInput() || !RenameColumnMode.IsInput() || NormalMode.IsInput() {
		t.Error("IsInput misclassifies modes")
	}
	if !DeleteConfirmMode.IsConfirm() || HelpMode.IsConfirm() {
		t.Error("IsConfirm misclassifies modes")
	}
}

func TestNotificationState(t *testing.T) {
	var n NotificationState
	if n.Current() != nil {
		t.Fatal("new state should be empty")
	}

	n.Notify(Error, "boom")
	if got := n.Current(); got == nil || got.Level != Error || got.Message != "boom" {
		t.Fatalf("Current() = %+v", got)
	}

	n.Clear()
	if n.Current() != nil {
		t.Error("Clear() left a notification")
	}
}
