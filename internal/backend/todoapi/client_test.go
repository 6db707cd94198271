package todoapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"todocli/internal/backend/todoapi"
	"todocli/internal/credstore"
	"todocli/internal/routeguard"
	"todocli/internal/service"
	"todocli/internal/session"
	"todocli/internal/stubserver"
)

const (
	testEmail    = "a@b.com"
	testPassword = "pw"
)

type env struct {
	stub   *stubserver.Server
	sess   *session.Manager
	store  credstore.Store
	client *todoapi.Client
}

func newEnv(t *testing.T) *env {
	t.Helper()

	stub := stubserver.New("test-secret", zerolog.Nop())
	stub.AddUser(testEmail, testPassword)

	ts := httptest.NewServer(stub.Handler())
	t.Cleanup(ts.Close)

	store := credstore.NewFileStore(t.TempDir(), zerolog.Nop())
	sess := session.NewManager(store, zerolog.Nop())
	client := todoapi.New(ts.URL+"/api/todo", 5*time.Second, sess, zerolog.Nop())

	return &env{stub: stub, sess: sess, store: store, client: client}
}

// loggedIn logs in through the real API and activates the session.
func (e *env) loggedIn(t *testing.T) {
	t.Helper()
	token, err := e.client.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.NoError(t, e.sess.Login(token))
}

func TestLoginStoresUsableToken(t *testing.T) {
	e := newEnv(t)

	token, err := e.client.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, e.sess.Login(token))
	current, ok := e.sess.Token()
	require.True(t, ok)
	require.Equal(t, token, current)

	persisted, has, err := e.store.Load()
	require.NoError(t, err)
	require.True(t, has)
	require.Equal(t, token, persisted)
}

func TestLoginInvalidCredentials(t *testing.T) {
	e := newEnv(t)

	_, err := e.client.Login(context.Background(), testEmail, "wrong")

	var serverErr *service.ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, http.StatusUnauthorized, serverErr.Status)
	require.Equal(t, "invalid credentials", serverErr.Message)
}

func TestLoginValidatesInput(t *testing.T) {
	e := newEnv(t)
	before := e.stub.RequestCount()

	var validationErr *service.ValidationError
	_, err := e.client.Login(context.Background(), "", "pw")
	require.ErrorAs(t, err, &validationErr)

	_, err = e.client.Login(context.Background(), testEmail, "")
	require.ErrorAs(t, err, &validationErr)

	require.Equal(t, before, e.stub.RequestCount(), "validation must not reach the network")
}

func TestRegisterIssuesToken(t *testing.T) {
	e := newEnv(t)

	token, err := e.client.Register(context.Background(), "new@b.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestRegisterConflict(t *testing.T) {
	e := newEnv(t)

	_, err := e.client.Register(context.Background(), testEmail, "pw")

	var serverErr *service.ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, http.StatusConflict, serverErr.Status)
	require.Equal(t, "email already registered", serverErr.Message)
}

func TestOperationsRequireSessionWithoutNetworkCall(t *testing.T) {
	e := newEnv(t)
	before := e.stub.RequestCount()
	ctx := context.Background()

	_, err := e.client.ListTasks(ctx)
	require.ErrorIs(t, err, service.ErrNotAuthenticated)

	_, err = e.client.GetTask(ctx, "x")
	require.ErrorIs(t, err, service.ErrNotAuthenticated)

	_, err = e.client.CreateTask(ctx, "t", "c", time.Time{})
	require.ErrorIs(t, err, service.ErrNotAuthenticated)

	completed := true
	err = e.client.UpdateTask(ctx, "x", service.TaskPatch{Completed: &completed})
	require.ErrorIs(t, err, service.ErrNotAuthenticated)

	err = e.client.DeleteTask(ctx, "x")
	require.ErrorIs(t, err, service.ErrNotAuthenticated)

	require.Equal(t, before, e.stub.RequestCount(), "no network call may be attempted")
}

func TestListTasks(t *testing.T) {
	e := newEnv(t)
	e.loggedIn(t)

	id := e.stub.SeedTask(testEmail, service.Task{Title: "x", Content: "body"})

	tasks, err := e.client.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, id, tasks[0].ID)
	require.Equal(t, "x", tasks[0].Title)
	require.False(t, tasks[0].Completed)
}

func TestListTasksEmptyIsNotAnError(t *testing.T) {
	e := newEnv(t)
	e.loggedIn(t)

	tasks, err := e.client.ListTasks(context.Background())
	require.NoError(t, err)
	require.NotNil(t, tasks)
	require.Empty(t, tasks)
}

func TestGetTask(t *testing.T) {
	e := newEnv(t)
	e.loggedIn(t)

	id := e.stub.SeedTask(testEmail, service.Task{Title: "x", Content: "body"})

	task, err := e.client.GetTask(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "x", task.Title)
	require.Equal(t, "body", task.Content)
}

func TestGetTaskNotFound(t *testing.T) {
	e := newEnv(t)
	e.loggedIn(t)

	_, err := e.client.GetTask(context.Background(), "no-such-id")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreateTaskValidatesBeforeNetwork(t *testing.T) {
	e := newEnv(t)
	e.loggedIn(t)
	before := e.stub.RequestCount()

	var validationErr *service.ValidationError

	_, err := e.client.CreateTask(context.Background(), "", "valid content", time.Now())
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "title", validationErr.Field)

	_, err = e.client.CreateTask(context.Background(), "valid title", "", time.Now())
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "content", validationErr.Field)

	require.Equal(t, before, e.stub.RequestCount(), "validation must not reach the network")
}

func TestCreateTaskAssignsID(t *testing.T) {
	e := newEnv(t)
	e.loggedIn(t)

	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	task, err := e.client.CreateTask(context.Background(), "buy milk", "two liters", due)
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	require.Equal(t, "buy milk", task.Title)
	require.True(t, task.EndDate.Equal(due))
}

func TestCreateTaskDefaultsDueDateToNow(t *testing.T) {
	e := newEnv(t)
	e.loggedIn(t)

	before := time.Now().Add(-time.Minute)
	task, err := e.client.CreateTask(context.Background(), "buy milk", "two liters", time.Time{})
	require.NoError(t, err)
	require.True(t, task.EndDate.After(before))
	require.True(t, task.EndDate.Before(time.Now().Add(time.Minute)))
}

func TestUpdateCompletedIsReflectedByList(t *testing.T) {
	e := newEnv(t)
	e.loggedIn(t)

	id := e.stub.SeedTask(testEmail, service.Task{ID: "1", Title: "x", Content: "body"})

	completed := true
	err := e.client.UpdateTask(context.Background(), id, service.TaskPatch{Completed: &completed})
	require.NoError(t, err)

	tasks, err := e.client.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "1", tasks[0].ID)
	require.True(t, tasks[0].Completed)
	require.Equal(t, "x", tasks[0].Title, "unsent fields stay unchanged")
}

func TestUpdateRejectsEmptyFields(t *testing.T) {
	e := newEnv(t)
	e.loggedIn(t)
	before := e.stub.RequestCount()

	var validationErr *service.ValidationError

	empty := ""
	err := e.client.UpdateTask(context.Background(), "1", service.TaskPatch{Title: &empty})
	require.ErrorAs(t, err, &validationErr)

	err = e.client.UpdateTask(context.Background(), "1", service.TaskPatch{})
	require.ErrorAs(t, err, &validationErr)

	require.Equal(t, before, e.stub.RequestCount())
}

func TestDeleteTask(t *testing.T) {
	e := newEnv(t)
	e.loggedIn(t)

	id := e.stub.SeedTask(testEmail, service.Task{Title: "x", Content: "body"})

	require.NoError(t, e.client.DeleteTask(context.Background(), id))

	tasks, err := e.client.ListTasks(context.Background())
	require.NoError(t, err)
	require.Empty(t, tasks)
}

// The consistency rule: a server-side token rejection must log the
// session out and land the route guard on the login screen.
func TestRejectedTokenForcesLogout(t *testing.T) {
	e := newEnv(t)

	expired, err := e.stub.MintToken(testEmail, -time.Hour)
	require.NoError(t, err)
	require.NoError(t, e.sess.Login(expired))

	guard := routeguard.New(routeguard.NavigatorFunc(func(routeguard.Screen) {}), routeguard.ScreenTasks, zerolog.Nop())
	e.sess.Subscribe(guard.OnSessionChanged)

	_, err = e.client.ListTasks(context.Background())
	require.ErrorIs(t, err, service.ErrNotAuthenticated)

	// Session and store agree the token is gone.
	require.False(t, e.sess.Authenticated())
	_, has, err := e.store.Load()
	require.NoError(t, err)
	require.False(t, has)

	// Guard transitioned to Unauthenticated.
	require.Equal(t, routeguard.Unauthenticated, guard.State())
	require.Equal(t, routeguard.ScreenLogin, guard.Current())
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close() // nothing is listening anymore

	store := credstore.NewFileStore(t.TempDir(), zerolog.Nop())
	sess := session.NewManager(store, zerolog.Nop())
	require.NoError(t, sess.Login("T1"))

	client := todoapi.New(url+"/api/todo", time.Second, sess, zerolog.Nop())

	_, err := client.ListTasks(context.Background())

	var transportErr *service.TransportError
	require.ErrorAs(t, err, &transportErr)

	// Transport failures say nothing about token validity.
	require.True(t, sess.Authenticated())
}

func TestRequestTimeout(t *testing.T) {
	blocked := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer slow.Close()
	defer close(blocked)

	store := credstore.NewFileStore(t.TempDir(), zerolog.Nop())
	sess := session.NewManager(store, zerolog.Nop())
	require.NoError(t, sess.Login("T1"))

	client := todoapi.New(slow.URL, 50*time.Millisecond, sess, zerolog.Nop())

	_, err := client.ListTasks(context.Background())

	var transportErr *service.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Contains(t, transportErr.Error(), "timed out")
}
