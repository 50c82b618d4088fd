package app

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/forge-editor/forge/internal/worker/git"
)

// execGitRunner implements git.Runner by shelling out to the git CLI
// in a working directory, the same process-boundary shape every
// integration seam in this tree keeps out of its own package.
type execGitRunner struct {
	dir string
}

// NewExecGitRunner returns a git.Runner backed by the git binary on
// PATH, run with dir as its working directory.
func NewExecGitRunner(dir string) git.Runner {
	return execGitRunner{dir: dir}
}

func (r execGitRunner) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Status implements git.Runner via `git status --porcelain=v2`.
func (r execGitRunner) Status(ctx context.Context) ([]git.FileStatus, error) {
	out, err := r.run(ctx, "status", "--porcelain=v2", "--untracked-files=all")
	if err != nil {
		return nil, err
	}

	var statuses []git.FileStatus
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		switch line[0] {
		case '1':
			statuses = append(statuses, parsePorcelainOrdinary(line)...)
		case '2':
			statuses = append(statuses, parsePorcelainRenamed(line)...)
		case 'u':
			if path := lastField(line); path != "" {
				statuses = append(statuses, git.FileStatus{Path: path, Status: git.StatusConflict})
			}
		case '?':
			if len(line) > 2 {
				statuses = append(statuses, git.FileStatus{Path: line[2:], Status: git.StatusUntracked})
			}
		}
	}
	return statuses, scanner.Err()
}

// DiffHunks implements git.Runner via `git diff -U0` for path,
// translating unified-diff hunk headers into Hunk's new-file line
// ranges (the only thing a gutter mark needs).
func (r execGitRunner) DiffHunks(ctx context.Context, path string) ([]git.Hunk, error) {
	out, err := r.run(ctx, "diff", "-U0", "--", path)
	if err != nil {
		return nil, err
	}

	var hunks []git.Hunk
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "@@ ") {
			continue
		}
		hunk, ok := parseHunkHeader(line)
		if ok {
			hunks = append(hunks, hunk)
		}
	}
	return hunks, nil
}

// parseHunkHeader parses "@@ -a,b +c,d @@ ..." into the new-side
// start/length a gutter mark is addressed by.
func parseHunkHeader(line string) (git.Hunk, bool) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return git.Hunk{}, false
	}
	newSide := strings.TrimPrefix(parts[2], "+")
	pieces := strings.SplitN(newSide, ",", 2)
	start, err := strconv.Atoi(pieces[0])
	if err != nil {
		return git.Hunk{}, false
	}
	lines := 1
	if len(pieces) == 2 {
		lines, err = strconv.Atoi(pieces[1])
		if err != nil {
			return git.Hunk{}, false
		}
	}
	kind := git.HunkAdded
	if lines == 0 {
		kind = git.HunkRemoved
	}
	return git.Hunk{NewStart: uint32(start), NewLines: uint32(lines), Kind: kind}, true
}

func parsePorcelainOrdinary(line string) []git.FileStatus {
	fields := strings.Fields(line)
	if len(fields) < 9 {
		return nil
	}
	xy := fields[1]
	path := lastField(line)

	var out []git.FileStatus
	if xy[0] != '.' {
		out = append(out, git.FileStatus{Path: path, Status: charToStatus(xy[0]), Staged: true})
	}
	if xy[1] != '.' {
		out = append(out, git.FileStatus{Path: path, Status: charToStatus(xy[1]), Staged: false})
	}
	return out
}

func parsePorcelainRenamed(line string) []git.FileStatus {
	tabIdx := strings.LastIndex(line, "\t")
	if tabIdx == -1 {
		return nil
	}
	fields := strings.Fields(line[:tabIdx])
	if len(fields) < 10 {
		return nil
	}
	xy := fields[1]
	return []git.FileStatus{{
		Path:   fields[9],
		Status: git.StatusRenamed,
		Staged: xy[0] != '.',
	}}
}

func charToStatus(c byte) git.StatusCode {
	switch c {
	case 'M', 'T':
		return git.StatusModified
	case 'A':
		return git.StatusAdded
	case 'D':
		return git.StatusDeleted
	case 'R':
		return git.StatusRenamed
	case 'U':
		return git.StatusConflict
	default:
		return git.StatusUnmodified
	}
}

func lastField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	last := fields[len(fields)-1]
	if idx := strings.Index(line, last); idx > 0 {
		return line[idx:]
	}
	return last
}
