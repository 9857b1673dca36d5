package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode              Mode = iota // Default navigation mode
	AddTaskMode                         // Typing the name of a new task
	AddColumnMode                       // Typing the name of a new column
	RenameColumnMode                    // Renaming the selected column
	DeleteConfirmMode                   // Confirming task deletion
	DeleteColumnConfirmMode             // Confirming column deletion
	HelpMode                            // Displaying help screen
)

// IsInput reports whether the mode reads a line of text
func (m Mode) IsInput() bool {
	return m == AddTaskMode || m == AddColumnMode || m == RenameColumnMode
}

// IsConfirm reports whether the mode waits for y/n
func (m Mode) IsConfirm() bool {
	return m == DeleteConfirmMode || m == DeleteColumnConfirmMode
}

// UIState manages the user interface state.
// This includes navigation (column/task selection), viewport scrolling,
// terminal dimensions, and the current interaction mode.
type UIState struct {
	selectedColumn int
	selectedTask   int

	width  int
	height int

	mode Mode

	// viewportOffset is the index of the leftmost visible column
	viewportOffset int

	// viewportSize is the number of columns that fit on the screen
	viewportSize int

	columnWidth int
}

// NewUIState creates a UIState for columns of the given rendered width
func NewUIState(columnWidth int) *UIState {
	return &UIState{
		mode:         NormalMode,
		viewportSize: 1, // recalculated when the width is set
		columnWidth:  max(columnWidth, 1),
	}
}

// SelectedColumn returns the index of the currently selected column.
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SelectedTask returns the index of the currently selected task.
func (s *UIState) SelectedTask() int {
	return s.selectedTask
}

// Select moves the cursor and scrolls the viewport to keep it visible
func (s *UIState) Select(column, task int) {
	s.selectedColumn = max(column, 0)
	s.selectedTask = max(task, 0)
	s.scrollToSelection()
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// Resize records the terminal size and recalculates the viewport
func (s *UIState) Resize(width, height int) {
	s.width = width
	s.height = height
	s.viewportSize = max(width/s.columnWidth, 1)
	s.scrollToSelection()
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode switches the interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// ViewportOffset returns the index of the leftmost visible column.
func (s *UIState) ViewportOffset() int {
	return s.viewportOffset
}

// ViewportSize returns how many columns fit on screen.
func (s *UIState) ViewportSize() int {
	return s.viewportSize
}

// Clamp pulls the cursor back inside a board whose columns hold
// taskCounts[i] tasks. Boards change under the cursor on refresh.
func (s *UIState) Clamp(taskCounts []int) {
	if len(taskCounts) == 0 {
		s.selectedColumn, s.selectedTask = 0, 0
		return
	}
	s.selectedColumn = min(s.selectedColumn, len(taskCounts)-1)
	s.selectedTask = max(min(s.selectedTask, taskCounts[s.selectedColumn]-1), 0)
	s.scrollToSelection()
}

func (s *UIState) scrollToSelection() {
	if s.selectedColumn < s.viewportOffset {
		s.viewportOffset = s.selectedColumn
	}
	if s.selectedColumn >= s.viewportOffset+s.viewportSize {
		s.viewportOffset = s.selectedColumn - s.viewportSize + 1
	}
}
