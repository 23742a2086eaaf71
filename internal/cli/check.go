package cli

import (
	"bytes"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/matzehuels/noticegen/pkg/errors"
)

// diffContext is the number of unchanged lines around each hunk.
const diffContext = 3

// compareOutput compares want with the file at path. It returns a unified
// diff and false when they differ; a missing file differs from any output.
func compareOutput(path string, want []byte) (string, bool, error) {
	have, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", false, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	if bytes.Equal(have, want) {
		return "", true, nil
	}

	from := path
	if have == nil {
		from = "/dev/null"
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(have)),
		B:        splitLinesKeepNL(string(want)),
		FromFile: from,
		ToFile:   path + " (generated)",
		Context:  diffContext,
	})
	if err != nil {
		return "", false, errors.Wrap(errors.ErrCodeInternal, err, "diff %s", path)
	}
	return diff, false, nil
}

// splitLinesKeepNL splits s into lines, keeping each line terminator.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
