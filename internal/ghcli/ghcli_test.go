package ghcli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureCommands(t *testing.T, err error) *[][]string {
	t.Helper()
	original := runCommand
	t.Cleanup(func() { runCommand = original })

	var calls [][]string
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		return nil, err
	}
	return &calls
}

func TestComment(t *testing.T) {
	calls := captureCommands(t, nil)

	require.NoError(t, Comment(45, "report body"))
	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"gh", "pr", "comment", "45", "--body", "report body"}, (*calls)[0])
}

func TestCommentFailure(t *testing.T) {
	captureCommands(t, errors.New("gh: not logged in"))

	err := Comment(45, "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PR 45")
	assert.Contains(t, err.Error(), "not logged in")
}

func TestPutContents(t *testing.T) {
	calls := captureCommands(t, nil)

	require.NoError(t, PutContents("acme/app", "qa/45/shot.png", "assets", "qa: shot", "aGVsbG8="))
	require.Len(t, *calls, 1)
	assert.Equal(t, []string{
		"gh", "api", "--method", "PUT",
		"/repos/acme/app/contents/qa/45/shot.png",
		"-f", "message=qa: shot",
		"-f", "content=aGVsbG8=",
		"-f", "branch=assets",
	}, (*calls)[0])
}
