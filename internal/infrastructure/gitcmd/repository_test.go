package gitcmd

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type call struct {
	dir  string
	args []string
}

func recordingExec(calls *[]call, out []byte, err error) func(context.Context, string, []string) ([]byte, error) {
	return func(_ context.Context, dir string, args []string) ([]byte, error) {
		*calls = append(*calls, call{dir: dir, args: args})
		return out, err
	}
}

func TestCreateTagLightweight(t *testing.T) {
	var calls []call
	repo := Repository{Exec: recordingExec(&calls, nil, nil)}

	if err := repo.CreateTag(context.Background(), "v2.3.1", ""); err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("expected 1 git call, got %d", len(calls))
	}
	if got := strings.Join(calls[0].args, " "); got != "tag v2.3.1" {
		t.Fatalf("unexpected args: %s", got)
	}
}

func TestCreateTagAnnotated(t *testing.T) {
	var calls []call
	repo := Repository{Exec: recordingExec(&calls, nil, nil)}

	if err := repo.CreateTag(context.Background(), "v2.3.1", "release 2.3.1"); err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if got := strings.Join(calls[0].args, " "); got != "tag -a v2.3.1 -m release 2.3.1" {
		t.Fatalf("unexpected args: %s", got)
	}
}

func TestCreateTagFailureIncludesOutput(t *testing.T) {
	var calls []call
	repo := Repository{Exec: recordingExec(&calls, []byte("fatal: tag 'v1.0.0' already exists\n"), errors.New("exit status 128"))}

	err := repo.CreateTag(context.Background(), "v1.0.0", "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected git output in error, got %v", err)
	}
}

func TestPushTag(t *testing.T) {
	var calls []call
	repo := Repository{Dir: "/repo", Exec: recordingExec(&calls, nil, nil)}

	if err := repo.PushTag(context.Background(), "origin", "v2.3.1"); err != nil {
		t.Fatalf("push tag: %v", err)
	}
	if got := strings.Join(calls[0].args, " "); got != "push origin v2.3.1" {
		t.Fatalf("unexpected args: %s", got)
	}
	if calls[0].dir != "/repo" {
		t.Fatalf("expected dir /repo, got %s", calls[0].dir)
	}
}

func TestDeleteTag(t *testing.T) {
	var calls []call
	repo := Repository{Exec: recordingExec(&calls, nil, nil)}

	if err := repo.DeleteTag(context.Background(), "v2.3.1"); err != nil {
		t.Fatalf("delete tag: %v", err)
	}
	if got := strings.Join(calls[0].args, " "); got != "tag -d v2.3.1" {
		t.Fatalf("unexpected args: %s", got)
	}
}

func TestTagExists(t *testing.T) {
	var calls []call
	repo := Repository{Exec: recordingExec(&calls, []byte("v2.3.1\n"), nil)}

	exists, err := repo.TagExists(context.Background(), "v2.3.1")
	if err != nil {
		t.Fatalf("tag exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected tag to exist")
	}
}

func TestTagExistsEmptyOutput(t *testing.T) {
	var calls []call
	repo := Repository{Exec: recordingExec(&calls, []byte(""), nil)}

	exists, err := repo.TagExists(context.Background(), "v2.3.1")
	if err != nil {
		t.Fatalf("tag exists: %v", err)
	}
	if exists {
		t.Fatalf("expected tag to be absent")
	}
}

func TestHead(t *testing.T) {
	var calls []call
	repo := Repository{Exec: recordingExec(&calls, []byte("abc123\n"), nil)}

	sha, err := repo.Head(context.Background())
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if sha != "abc123" {
		t.Fatalf("unexpected sha: %s", sha)
	}
}

func TestLatestTagNoTags(t *testing.T) {
	var calls []call
	repo := Repository{Exec: recordingExec(&calls, []byte("fatal: No names found, cannot describe anything.\n"), errors.New("exit status 128"))}

	tag, err := repo.LatestTag(context.Background())
	if err != nil {
		t.Fatalf("latest tag: %v", err)
	}
	if tag != "" {
		t.Fatalf("expected empty tag, got %q", tag)
	}
}
