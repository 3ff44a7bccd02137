// Package ghcli shells out to the GitHub CLI for the operations that need
// repository credentials: PR comments and content uploads.
package ghcli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

const (
	commentTimeout = 30 * time.Second
	uploadTimeout  = 60 * time.Second
)

// runCommand executes gh and returns stdout. Swapped out in tests.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%s: %s", name, exitErr.Stderr)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Comment posts a review comment on a pull request.
func Comment(pr int, body string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commentTimeout)
	defer cancel()

	_, err := runCommand(ctx, "gh", "pr", "comment", strconv.Itoa(pr), "--body", body)
	if err != nil {
		return fmt.Errorf("failed to post comment on PR %d: %w", pr, err)
	}
	return nil
}

// PutContents writes a base64-encoded file into a repository branch via
// the contents API.
func PutContents(repo, path, branch, message, contentB64 string) error {
	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	_, err := runCommand(ctx, "gh", "api", "--method", "PUT",
		fmt.Sprintf("/repos/%s/contents/%s", repo, path),
		"-f", "message="+message,
		"-f", "content="+contentB64,
		"-f", "branch="+branch)
	if err != nil {
		return fmt.Errorf("failed to upload %s to %s: %w", path, repo, err)
	}
	return nil
}
