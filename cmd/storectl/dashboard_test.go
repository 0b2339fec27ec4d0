package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jacksmith/storectl/internal/api"
	"github.com/jacksmith/storectl/internal/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSession feeds script to a dashboard session against srv and returns the
// output.
func runSession(t *testing.T, baseURL, script string) string {
	t.Helper()
	var out bytes.Buffer
	s := newSession(api.NewClient(baseURL), strings.NewReader(script), &out)
	defer s.close()
	require.NoError(t, s.run(context.Background()))
	return out.String()
}

func TestDashboardCreate(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, strings.Join([]string{
		"create name Downtown Electronics",
		"create address 1 Main St",
		"create manager B. Kim",
		"create submit",
		"quit",
	}, "\n")+"\n")

	assert.Contains(t, output, flow.MsgCreated)
	s, ok := srv.Store("8")
	require.True(t, ok)
	assert.Equal(t, "Downtown Electronics", s.StoreName)
}

func TestDashboardCreateIncomplete(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, "cr name X\ncr sub\n")
	assert.Contains(t, output, "error: invalid address: must not be empty")
	assert.Equal(t, 0, srv.CountCalls("POST"))
}

func TestDashboardDetails(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, "det 7\ndet 99\n")
	assert.Contains(t, output, "Uptown Electronics")
	assert.Contains(t, output, flow.MsgFetchDetailsFail)
}

// An update for an unknown store cannot be submitted; reset clears the error.
func TestDashboardUpdateRequiresFetch(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, strings.Join([]string{
		"update submit",
		"update id 99",
		"update fetch",
		"update name X",
		"update submit",
		"update reset",
		"status",
	}, "\n")+"\n")

	assert.Contains(t, output, flow.MsgFetchBeforeEdit)
	assert.Contains(t, output, flow.MsgNotFound)
	assert.Equal(t, 0, srv.CountCalls("PUT"))

	// The final render shows no error in the update panel.
	last := output[strings.LastIndex(output, "== Update =="):]
	last = last[:strings.Index(last, "== Delete ==")]
	assert.NotContains(t, last, flow.MsgNotFound)
}

func TestDashboardUpdate(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, strings.Join([]string{
		"up id 7",
		"up fetch",
		"up id 5",
		"up manager B. Kim",
		"up submit",
	}, "\n")+"\n")

	assert.Contains(t, output, "(locked, reset to change)")
	assert.Contains(t, output, "error: "+flow.ErrIDLocked.Error())
	assert.Contains(t, output, flow.MsgUpdated)

	s, _ := srv.Store("7")
	assert.Equal(t, "B. Kim", s.ManagerName)
	_, ok := srv.Store("5")
	assert.True(t, ok)
}

// Previewing a store and typing "delete" aborts without a request.
func TestDashboardDeleteWrongToken(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, strings.Join([]string{
		"delete id 5",
		"delete preview",
		"delete confirm",
		"delete",
	}, "\n")+"\n")

	assert.Contains(t, output, "Harbor Books")
	assert.Contains(t, output, `Type "DELETE" to confirm`)
	assert.Contains(t, output, flow.MsgDeleteCancelled)
	assert.Equal(t, 0, srv.CountCalls("DELETE"))
	_, ok := srv.Store("5")
	assert.True(t, ok)
}

func TestDashboardDeleteWithToken(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, "del id 5\ndel prev\ndel conf\nDELETE\n")
	assert.Contains(t, output, flow.MsgDeleted)
	_, ok := srv.Store("5")
	assert.False(t, ok)
}

func TestDashboardDeleteDeclined(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, "del id 5\ndel confirm\nn\n")
	assert.Contains(t, output, "Deletion cancelled.")
	assert.Equal(t, 0, srv.CountCalls("DELETE"))
}

// A refused edit is reported even while an older fetch error is on screen.
func TestDashboardRefusedEditAfterFailedFetch(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, strings.Join([]string{
		"update id 99",
		"update fetch",
		"update name Foo",
	}, "\n")+"\n")

	assert.Contains(t, output, flow.MsgNotFound)
	assert.Contains(t, output, "error: "+flow.ErrNotFetched.Error())
	assert.NotContains(t, output, "error: failed to fetch")
}

func TestDashboardIDLockedAfterFailedSubmit(t *testing.T) {
	srv := setupTestServer(t)
	srv.Fail(http.MethodPut, http.StatusInternalServerError)

	output := runSession(t, srv.URL, strings.Join([]string{
		"update id 7",
		"update fetch",
		"update submit",
		"update id 8",
	}, "\n")+"\n")

	assert.Contains(t, output, flow.MsgUpdateFailed)
	assert.NotContains(t, output, "error: failed to update")
	assert.Contains(t, output, "error: "+flow.ErrIDLocked.Error())
	assert.Equal(t, 1, srv.CountCalls(http.MethodPut))
}

// A server failure shows the alert once and keeps the draft for a retry.
func TestDashboardCreateServerError(t *testing.T) {
	srv := setupTestServer(t)
	srv.Fail(http.MethodPost, http.StatusInternalServerError)

	output := runSession(t, srv.URL, strings.Join([]string{
		"create name Downtown Electronics",
		"create address 1 Main St",
		"create manager B. Kim",
		"create submit",
		"create submit",
	}, "\n")+"\n")

	assert.Contains(t, output, flow.MsgCreateFailed)
	assert.NotContains(t, output, "error: failed to create")
	assert.Equal(t, 2, srv.CountCalls(http.MethodPost))

	last := output[strings.LastIndex(output, "== Create =="):]
	last = last[:strings.Index(last, "== Details ==")]
	assert.Contains(t, last, "Downtown Electronics")
	assert.Contains(t, last, flow.MsgCreateFailed)
}

func TestDashboardRepeatedFetchFailureShownInline(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, "det 99\ndet 98\n")
	assert.Contains(t, output, flow.MsgFetchDetailsFail)
	assert.NotContains(t, output, "error:")
}

// Cancelling the context ends a session waiting for input.
func TestDashboardInterrupt(t *testing.T) {
	srv := setupTestServer(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	s := newSession(api.NewClient(srv.URL), pr, &out)
	defer s.close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()

	_, err := pw.Write([]byte("details 7\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop after cancel")
	}
}

func TestDropInline(t *testing.T) {
	apiErr := fmt.Errorf("failed to fetch store 9: %w", &api.APIError{StatusCode: 500, Message: "boom"})
	tests := []struct {
		name          string
		err           error
		before, after string
		kept          bool
	}{
		{"no error", nil, "", "", false},
		{"no inline message", flow.ErrBusy, "", "", true},
		{"new inline message", apiErr, "", flow.MsgNotFound, false},
		{"older message left in place", flow.ErrNotFetched, flow.MsgNotFound, flow.MsgNotFound, true},
		{"same api failure again", apiErr, flow.MsgNotFound, flow.MsgNotFound, false},
		{"same missing id again", flow.ErrIDRequired, flow.MsgEnterID, flow.MsgEnterID, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dropInline(tt.err, tt.before, tt.after)
			if tt.kept {
				assert.Equal(t, tt.err, got)
			} else {
				assert.NoError(t, got)
			}
		})
	}
}

func TestDashboardUnknownAndAmbiguousCommands(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, "list\nd 5\nupdate frobnicate\n")
	assert.Contains(t, output, `error: unknown command "list"`)
	assert.Contains(t, output, "error: ambiguous command")
	assert.Contains(t, output, "error: usage: update")
}

func TestDashboardHelpAndQuit(t *testing.T) {
	srv := setupTestServer(t)

	output := runSession(t, srv.URL, "help\nquit\ndetails 7\n")
	assert.Contains(t, output, "update reset")
	assert.NotContains(t, output, "Uptown Electronics")
	assert.Equal(t, 0, len(srv.Calls()))
}

func TestSplitWord(t *testing.T) {
	tests := []struct {
		in, word, rest string
	}{
		{"", "", ""},
		{"submit", "submit", ""},
		{"name  Downtown Electronics ", "name", "Downtown Electronics"},
		{"  id\t7", "id", "7"},
	}
	for _, tt := range tests {
		word, rest := splitWord(tt.in)
		assert.Equal(t, tt.word, word, tt.in)
		assert.Equal(t, tt.rest, rest, tt.in)
	}
}
