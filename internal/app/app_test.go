package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/kanboard/internal/config"
	"github.com/thenoetrevino/kanboard/internal/events"
	"github.com/thenoetrevino/kanboard/internal/kanban"
	boardservice "github.com/thenoetrevino/kanboard/internal/services/board"
	columnservice "github.com/thenoetrevino/kanboard/internal/services/column"
	taskservice "github.com/thenoetrevino/kanboard/internal/services/task"
	"github.com/thenoetrevino/kanboard/internal/session"
	"github.com/thenoetrevino/kanboard/internal/testutil"
	"github.com/thenoetrevino/kanboard/internal/types"
)

func setupApp(t *testing.T) (*App, *testutil.RecordingPublisher) {
	t.Helper()
	pub := testutil.NewRecordingPublisher()
	return New(testutil.SetupTestRepo(t), WithEventPublisher(pub)), pub
}

// reloaded mounts a fresh store from storage for comparison with a session
func reloaded(t *testing.T, a *App, boardID types.BoardID) []*kanban.ColumnState {
	t.Helper()
	snapshot, err := a.BoardService.LoadBoard(context.Background(), boardID, nil)
	require.NoError(t, err)
	view, err := kanban.BuildBoard(snapshot.Columns, snapshot.Tasks)
	require.NoError(t, err)
	return view
}

func layout(view []*kanban.ColumnState) map[string][]string {
	out := make(map[string][]string, len(view))
	for _, col := range view {
		names := []string{}
		for _, task := range col.Tasks {
			names = append(names, task.Name)
		}
		out[col.Name] = names
	}
	return out
}

func TestNew(t *testing.T) {
	a := New(testutil.SetupTestRepo(t))

	assert.NotNil(t, a.BoardService)
	assert.NotNil(t, a.ColumnService)
	assert.NotNil(t, a.TaskService)
	assert.NotNil(t, a.TagService)
	assert.Nil(t, a.Events())
	assert.NotNil(t, a.Repo())
}

func TestOpen_WithoutDaemon(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(dir, "kanboard.db")
	cfg.SocketPath = filepath.Join(dir, "missing.sock")

	a, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, a.Events())

	_, err = a.BoardService.CreateBoard(context.Background(), boardservice.CreateBoardRequest{Name: "Work"})
	require.NoError(t, err)
	require.NoError(t, a.Close())
}

func TestOpen_WithDaemon(t *testing.T) {
	_, socketPath := testutil.SetupTestDaemon(t)
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "kanboard.db")
	cfg.SocketPath = socketPath

	a, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, a.Events())
	require.NoError(t, a.Close())
}

func TestClose(t *testing.T) {
	a, pub := setupApp(t)

	require.NoError(t, a.Close())
	assert.True(t, pub.Closed)
}

// ============================================================================
// Session against sqlite
// ============================================================================

func TestSession_StorageMatchesView(t *testing.T) {
	a, pub := setupApp(t)
	ctx := context.Background()
	board := testutil.CreateTestBoard(t, a.Repo(), "Board")
	todo := testutil.ColumnIDByName(t, a.Repo(), board.ID, "Todo")
	done := testutil.ColumnIDByName(t, a.Repo(), board.ID, "Done")

	s := a.NewSession()
	require.NoError(t, s.Open(ctx, board.ID))

	var ids []types.TaskID
	for _, name := range []string{"a", "b", "c"} {
		task, err := s.CreateTask(ctx, session.NewTask{ColumnID: todo, Name: name})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	_, err := s.CreateTask(ctx, session.NewTask{ColumnID: types.UnassignedColumnID, Name: "loose"})
	require.NoError(t, err)

	_, err = s.MoveTask(ctx, ids[2], todo, 0)
	require.NoError(t, err)
	_, err = s.MoveTask(ctx, ids[0], done, 0)
	require.NoError(t, err)
	_, err = s.DeleteTask(ctx, ids[1])
	require.NoError(t, err)

	require.NoError(t, s.Check())
	want := map[string][]string{
		types.UnassignedColumnName: {"loose"},
		"Todo":                     {"c"},
		"In Progress":              {},
		"Done":                     {"a"},
	}
	assert.Equal(t, want, layout(s.Columns()))
	assert.Equal(t, want, layout(reloaded(t, a, board.ID)))
	assert.NotEmpty(t, pub.BoardsChanged())
}

func TestSession_ColumnsMatchStorage(t *testing.T) {
	a, _ := setupApp(t)
	ctx := context.Background()
	board := testutil.CreateTestBoard(t, a.Repo(), "Board")
	inProgress := testutil.ColumnIDByName(t, a.Repo(), board.ID, "In Progress")
	done := testutil.ColumnIDByName(t, a.Repo(), board.ID, "Done")

	s := a.NewSession()
	require.NoError(t, s.Open(ctx, board.ID))

	_, err := s.CreateColumn(ctx, "Archive")
	require.NoError(t, err)
	_, err = s.MoveColumn(ctx, done, 1)
	require.NoError(t, err)
	_, err = s.DeleteColumn(ctx, inProgress)
	require.NoError(t, err)
	require.NoError(t, s.Check())

	names := func(view []*kanban.ColumnState) []string {
		out := make([]string, len(view))
		for i, col := range view {
			out[i] = col.Name
		}
		return out
	}
	assert.Equal(t, names(reloaded(t, a, board.ID)), names(s.Columns()))
	assert.Equal(t, []string{types.UnassignedColumnName, "Done", "Todo", "Archive"}, names(s.Columns()))
}

func TestSession_DeleteColumnWithTasks(t *testing.T) {
	a, _ := setupApp(t)
	ctx := context.Background()
	board := testutil.CreateTestBoard(t, a.Repo(), "Board")
	todo := testutil.ColumnIDByName(t, a.Repo(), board.ID, "Todo")
	testutil.CreateTestTask(t, a.Repo(), board.ID, todo, "busy")

	s := a.NewSession()
	require.NoError(t, s.Open(ctx, board.ID))

	_, err := s.DeleteColumn(ctx, todo)
	assert.ErrorIs(t, err, session.ErrPersist)
	assert.ErrorIs(t, err, columnservice.ErrColumnHasTasks)
	assert.Equal(t, todo, s.Columns()[1].ID)
}

func TestSession_AssignTags(t *testing.T) {
	a, _ := setupApp(t)
	ctx := context.Background()
	board := testutil.CreateTestBoard(t, a.Repo(), "Board")
	todo := testutil.ColumnIDByName(t, a.Repo(), board.ID, "Todo")
	task := testutil.CreateTestTask(t, a.Repo(), board.ID, todo, "tagged")
	tags, err := a.Repo().CreateTags(ctx, board.ID, []string{"bug", "ui"}, "")
	require.NoError(t, err)

	s := a.NewSession()
	require.NoError(t, s.Open(ctx, board.ID))

	got, err := s.AssignTags(ctx, task.ID, []types.TagID{tags[0].ID})
	require.NoError(t, err)
	require.Len(t, got, 1)

	stored, err := a.TaskService.GetTaskDetail(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.TagID{tags[0].ID}, stored.TagIDs())

	inView, ok := s.Task(task.ID)
	require.True(t, ok)
	assert.Equal(t, stored.TagIDs(), inView.TagIDs())
}

func TestSession_FailedCreateLeavesNoRow(t *testing.T) {
	a, _ := setupApp(t)
	ctx := context.Background()
	board := testutil.CreateTestBoard(t, a.Repo(), "Board")
	todo := testutil.ColumnIDByName(t, a.Repo(), board.ID, "Todo")

	s := a.NewSession()
	require.NoError(t, s.Open(ctx, board.ID))

	_, err := s.CreateTask(ctx, session.NewTask{ColumnID: todo, Name: "   "})
	assert.ErrorIs(t, err, session.ErrPersist)

	_, ok := s.Task(types.TempTaskID)
	assert.False(t, ok)
	tasks, err := a.TaskService.GetTasksByBoard(ctx, board.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

// ============================================================================
// Live refresh through the daemon
// ============================================================================

func TestLiveRefresh_ThroughDaemon(t *testing.T) {
	_, socketPath := testutil.SetupTestDaemon(t)
	ctx := context.Background()

	repo := testutil.SetupTestRepo(t)
	writer := New(repo, WithEventPublisher(
		testutil.SetupTestClient(t, socketPath, events.WithDebounce(10*time.Millisecond)),
	))
	board := testutil.CreateTestBoard(t, repo, "Board")
	other := testutil.CreateTestBoard(t, repo, "Other")
	todo := testutil.ColumnIDByName(t, repo, board.ID, "Todo")

	viewer := New(repo)
	s := viewer.NewSession()
	require.NoError(t, s.Open(ctx, board.ID))

	listener := testutil.SetupTestClient(t, socketPath)
	require.NoError(t, listener.Subscribe(board.ID))
	listenCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	ch, err := listener.Listen(listenCtx)
	require.NoError(t, err)
	// the daemon registers the subscription asynchronously
	time.Sleep(100 * time.Millisecond)

	_, err = writer.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		BoardID:  other.ID,
		ColumnID: testutil.ColumnIDByName(t, repo, other.ID, "Todo"),
		Name:     "elsewhere",
	})
	require.NoError(t, err)
	testutil.WaitForNoEvent(t, ch, 300*time.Millisecond)

	_, err = writer.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		BoardID:  board.ID,
		ColumnID: todo,
		Name:     "from another process",
	})
	require.NoError(t, err)

	ev := testutil.WaitForEvent(t, ch, 2*time.Second)
	assert.Equal(t, board.ID, ev.BoardID)

	refreshed, err := s.HandleEvent(ctx, ev)
	require.NoError(t, err)
	assert.True(t, refreshed)
	assert.Equal(t, []string{"from another process"}, layout(s.Columns())["Todo"])
}
