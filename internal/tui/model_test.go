package tui

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/kanboard/internal/app"
	"github.com/thenoetrevino/kanboard/internal/database"
	"github.com/thenoetrevino/kanboard/internal/events"
	"github.com/thenoetrevino/kanboard/internal/models"
	"github.com/thenoetrevino/kanboard/internal/testutil"
	"github.com/thenoetrevino/kanboard/internal/tui/state"
	"github.com/thenoetrevino/kanboard/internal/types"
)

type fixture struct {
	repo  *database.Repository
	app   *app.App
	board *models.Board
	t1    *models.Task
	t2    *models.Task
}

// setupTestModel opens a board with Todo holding t1 and t2 and puts the
// cursor on t1
func setupTestModel(t *testing.T) (Model, *fixture) {
	t.Helper()

	repo := testutil.SetupTestRepo(t)
	f := &fixture{repo: repo, app: app.New(repo)}
	f.board = testutil.CreateTestBoard(t, repo, "Roadmap")
	todo := testutil.ColumnIDByName(t, repo, f.board.ID, "Todo")
	f.t1 = testutil.CreateTestTask(t, repo, f.board.ID, todo, "t1")
	f.t2 = testutil.CreateTestTask(t, repo, f.board.ID, todo, "t2")

	sess := f.app.NewSession()
	if err := sess.Open(context.Background(), f.board.ID); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(sess.Close)

	m := New(context.Background(), sess)
	m = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
	m = press(t, m, "l")
	return m, f
}

// send delivers msg and runs any resulting mutation to completion
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	if result, ok := cmd().(MutationMsg); ok {
		next, _ = m.Update(result)
		m = next.(Model)
	}
	return m
}

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEsc})
	}
	r := []rune(key)[0]
	return tea.KeyPressMsg(tea.Key{Text: key, Code: r})
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	return send(t, m, keyPress(key))
}

func columnNames(m Model) []string {
	names := make([]string, 0, len(m.columns))
	for _, col := range m.columns {
		names = append(names, col.Name)
	}
	return names
}

func taskNames(m Model, column int) []string {
	names := []string{}
	for _, task := range m.columns[column].Tasks {
		names = append(names, task.Name)
	}
	return names
}

func assertCursor(t *testing.T, m Model, column, task int) {
	t.Helper()
	if m.ui.SelectedColumn() != column || m.ui.SelectedTask() != task {
		t.Errorf("cursor = (%d, %d), want (%d, %d)",
			m.ui.SelectedColumn(), m.ui.SelectedTask(), column, task)
	}
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNew_LoadsBoard(t *testing.T) {
	m, _ := setupTestModel(t)

	assertStrings(t, columnNames(m), []string{"Unassigned", "Todo", "In Progress", "Done"})
	assertStrings(t, taskNames(m, 1), []string{"t1", "t2"})
	assertCursor(t, m, 1, 0)
}

func TestNavigation(t *testing.T) {
	m, _ := setupTestModel(t)

	m = press(t, m, "j")
	assertCursor(t, m, 1, 1)

	// past the last task
	m = press(t, m, "j")
	assertCursor(t, m, 1, 1)

	// In Progress is empty so the row clamps to 0
	m = press(t, m, "l")
	assertCursor(t, m, 2, 0)

	m = press(t, m, "h")
	m = press(t, m, "h")
	m = press(t, m, "h")
	assertCursor(t, m, 0, 0)
}

func TestAddTask(t *testing.T) {
	m, f := setupTestModel(t)

	m = press(t, m, "a")
	if m.ui.Mode() != state.AddTaskMode {
		t.Fatalf("mode = %v, want AddTaskMode", m.ui.Mode())
	}
	m = press(t, m, "Write docs")
	m = press(t, m, "enter")

	if m.ui.Mode() != state.NormalMode {
		t.Errorf("mode = %v, want NormalMode", m.ui.Mode())
	}
	assertStrings(t, taskNames(m, 1), []string{"t1", "t2", "Write docs"})
	assertCursor(t, m, 1, 2)

	created := m.columns[1].Tasks[2]
	if created.ID.IsTemp() {
		t.Fatal("placeholder was not replaced by the stored task")
	}
	stored, err := f.app.TaskService.GetTaskDetail(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetTaskDetail() error = %v", err)
	}
	if stored.Position != 2 {
		t.Errorf("stored position = %d, want 2", stored.Position)
	}
}

func TestAddTask_EmptyNameStaysInInput(t *testing.T) {
	m, _ := setupTestModel(t)

	m = press(t, m, "a")
	m = press(t, m, "enter")

	if m.ui.Mode() != state.AddTaskMode {
		t.Errorf("mode = %v, want AddTaskMode", m.ui.Mode())
	}
	if n := m.notifications.Current(); n == nil || n.Level != state.Error {
		t.Errorf("expected an error notification, got %+v", n)
	}

	m = press(t, m, "esc")
	if m.ui.Mode() != state.NormalMode {
		t.Errorf("esc should cancel, mode = %v", m.ui.Mode())
	}
	assertStrings(t, taskNames(m, 1), []string{"t1", "t2"})
}

func TestMoveTaskRight(t *testing.T) {
	m, f := setupTestModel(t)

	m = press(t, m, "L")

	assertStrings(t, taskNames(m, 1), []string{"t2"})
	assertStrings(t, taskNames(m, 2), []string{"t1"})
	assertCursor(t, m, 2, 0)

	stored, err := f.app.TaskService.GetTaskDetail(context.Background(), f.t1.ID)
	if err != nil {
		t.Fatalf("GetTaskDetail() error = %v", err)
	}
	if stored.ColumnID != m.columns[2].ID || stored.Position != 0 {
		t.Errorf("stored t1 = (%s, %d), want (%s, 0)", stored.ColumnID, stored.Position, m.columns[2].ID)
	}
}

func TestMoveTask_RedrawsBeforePersisting(t *testing.T) {
	m, f := setupTestModel(t)
	todo := m.columns[1].ID

	next, cmd := m.Update(keyPress("L"))
	m = next.(Model)
	assertStrings(t, taskNames(m, 2), []string{"t1"})
	assertCursor(t, m, 2, 0)

	stored, err := f.app.TaskService.GetTaskDetail(context.Background(), f.t1.ID)
	if err != nil {
		t.Fatalf("GetTaskDetail() error = %v", err)
	}
	if stored.ColumnID != todo {
		t.Errorf("t1 stored before the command ran: column %s", stored.ColumnID)
	}

	if cmd == nil {
		t.Fatal("move should return a command")
	}
	next, _ = m.Update(cmd())
	m = next.(Model)
	assertCursor(t, m, 2, 0)

	stored, err = f.app.TaskService.GetTaskDetail(context.Background(), f.t1.ID)
	if err != nil {
		t.Fatalf("GetTaskDetail() error = %v", err)
	}
	if stored.ColumnID != m.columns[2].ID {
		t.Errorf("stored t1 column = %s, want %s", stored.ColumnID, m.columns[2].ID)
	}
}

func TestMoveTaskToUnassigned(t *testing.T) {
	m, _ := setupTestModel(t)

	m = press(t, m, "H")

	assertStrings(t, taskNames(m, 0), []string{"t1"})
	assertCursor(t, m, 0, 0)
	if !m.columns[0].Tasks[0].ColumnID.IsNull() {
		t.Errorf("task column = %q, want unassigned", m.columns[0].Tasks[0].ColumnID)
	}
}

func TestMoveTaskDown(t *testing.T) {
	m, f := setupTestModel(t)

	m = press(t, m, "J")

	assertStrings(t, taskNames(m, 1), []string{"t2", "t1"})
	assertCursor(t, m, 1, 1)

	// already last
	m = press(t, m, "J")
	assertStrings(t, taskNames(m, 1), []string{"t2", "t1"})

	stored, err := f.app.TaskService.GetTaskDetail(context.Background(), f.t2.ID)
	if err != nil {
		t.Fatalf("GetTaskDetail() error = %v", err)
	}
	if stored.Position != 0 {
		t.Errorf("stored t2 position = %d, want 0", stored.Position)
	}
}

func TestMoveColumn(t *testing.T) {
	m, f := setupTestModel(t)

	m = press(t, m, ">")

	assertStrings(t, columnNames(m), []string{"Unassigned", "In Progress", "Todo", "Done"})
	assertCursor(t, m, 2, 0)

	// the stored chain matches the view
	fresh := f.app.NewSession()
	if err := fresh.Open(context.Background(), f.board.ID); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer fresh.Close()
	stored := make([]string, 0)
	for _, col := range fresh.Columns() {
		stored = append(stored, col.Name)
	}
	assertStrings(t, stored, columnNames(m))
}

func TestMoveColumn_UnassignedStaysFirst(t *testing.T) {
	m, _ := setupTestModel(t)

	// Todo cannot move in front of Unassigned
	m = press(t, m, "<")
	assertStrings(t, columnNames(m), []string{"Unassigned", "Todo", "In Progress", "Done"})

	// Unassigned itself cannot move
	m = press(t, m, "h")
	m = press(t, m, ">")
	assertStrings(t, columnNames(m), []string{"Unassigned", "Todo", "In Progress", "Done"})
}

func TestDeleteTask(t *testing.T) {
	m, f := setupTestModel(t)

	m = press(t, m, "d")
	if m.ui.Mode() != state.DeleteConfirmMode {
		t.Fatalf("mode = %v, want DeleteConfirmMode", m.ui.Mode())
	}
	m = press(t, m, "n")
	assertStrings(t, taskNames(m, 1), []string{"t1", "t2"})

	m = press(t, m, "d")
	m = press(t, m, "y")
	assertStrings(t, taskNames(m, 1), []string{"t2"})
	if m.columns[1].Tasks[0].Position != 0 {
		t.Errorf("t2 position = %d, want 0", m.columns[1].Tasks[0].Position)
	}

	if _, err := f.app.TaskService.GetTaskDetail(context.Background(), f.t1.ID); err == nil {
		t.Error("t1 still stored after delete")
	}
}

func TestColumnLifecycle(t *testing.T) {
	m, _ := setupTestModel(t)

	m = press(t, m, "C")
	m = press(t, m, "Review")
	m = press(t, m, "enter")
	assertStrings(t, columnNames(m), []string{"Unassigned", "Todo", "In Progress", "Done", "Review"})
	assertCursor(t, m, 4, 0)

	m = press(t, m, "R")
	if m.input.Value() != "Review" {
		t.Errorf("rename prompt = %q, want the current name", m.input.Value())
	}
	m.input.SetValue("QA")
	m = press(t, m, "enter")
	assertStrings(t, columnNames(m), []string{"Unassigned", "Todo", "In Progress", "Done", "QA"})

	m = press(t, m, "X")
	m = press(t, m, "y")
	assertStrings(t, columnNames(m), []string{"Unassigned", "Todo", "In Progress", "Done"})
	assertCursor(t, m, 3, 0)
}

func TestDeleteColumn_WithTasksFails(t *testing.T) {
	m, _ := setupTestModel(t)

	m = press(t, m, "X")
	m = press(t, m, "y")

	assertStrings(t, columnNames(m), []string{"Unassigned", "Todo", "In Progress", "Done"})
	if n := m.notifications.Current(); n == nil || n.Level != state.Error {
		t.Errorf("expected an error notification, got %+v", n)
	}
}

func TestRefreshMsg(t *testing.T) {
	m, f := setupTestModel(t)

	// written behind the session's back
	todo := m.columns[1].ID
	testutil.CreateTestTask(t, f.repo, f.board.ID, todo, "t3")

	m = send(t, m, RefreshMsg{Event: events.Event{Type: events.EventBoardChanged, BoardID: f.board.ID}})
	assertStrings(t, taskNames(m, 1), []string{"t1", "t2", "t3"})

	// events for other boards are ignored
	testutil.CreateTestTask(t, f.repo, f.board.ID, todo, "t4")
	m = send(t, m, RefreshMsg{Event: events.Event{Type: events.EventBoardChanged, BoardID: types.BoardID("other")}})
	assertStrings(t, taskNames(m, 1), []string{"t1", "t2", "t3"})
}

func TestSubscribe(t *testing.T) {
	m, f := setupTestModel(t)
	if m.Init() != nil {
		t.Error("Init() without events should not listen")
	}

	ch := make(chan events.Event, 1)
	m.eventChan = ch
	ch <- events.Event{Type: events.EventBoardChanged, BoardID: f.board.ID}

	msg := m.subscribe()()
	refresh, ok := msg.(RefreshMsg)
	if !ok || refresh.Event.BoardID != f.board.ID {
		t.Errorf("subscribe() = %#v, want RefreshMsg for the board", msg)
	}

	close(ch)
	if msg := m.subscribe()(); msg != nil {
		t.Errorf("closed channel should yield nil, got %#v", msg)
	}
}

func TestView(t *testing.T) {
	m, _ := setupTestModel(t)

	if !m.View().AltScreen {
		t.Error("board should use the alternate screen")
	}
	view := m.content()
	for _, want := range []string{"Todo", "In Progress", "t1", "Roadmap", "press ? for help"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = press(t, m, "?")
	if !strings.Contains(m.content(), "move task up / down") {
		t.Error("help view missing key descriptions")
	}
	m = press(t, m, "x")
	if m.ui.Mode() != state.NormalMode {
		t.Errorf("any key should leave help, mode = %v", m.ui.Mode())
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupTestModel(t)

	_, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
