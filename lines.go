package stackup

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ensureLines appends the lines missing from the file at path, creating the
// file when absent, and returns the lines it added. Presence is checked
// after whitespace trimming, so an already-present line is never duplicated
// across runs.
func ensureLines(path string, lines []string) ([]string, error) {
	existing := map[string]bool{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		for _, line := range strings.Split(string(data), "\n") {
			existing[strings.TrimSpace(line)] = true
		}
	case !os.IsNotExist(err):
		return nil, errors.Wrapf(err, "reading %s failed", path)
	}

	added := []string{}
	for _, line := range lines {
		if !existing[strings.TrimSpace(line)] {
			added = append(added, line)
		}
	}
	if len(added) == 0 {
		return nil, nil
	}

	var buf strings.Builder
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		buf.WriteString("\n")
	}
	for _, line := range added {
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s failed", path)
	}
	if _, err := f.WriteString(buf.String()); err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "appending to %s failed", path)
	}
	return added, errors.Wrapf(f.Close(), "appending to %s failed", path)
}
