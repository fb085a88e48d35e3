package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLaunched checks the log output within a HarnessResult to confirm
// that the named entry point was dispatched. It abstracts the dispatcher's
// log format, making tests more resilient to internal refactoring.
func AssertLaunched(t *testing.T, result *HarnessResult, entryPoint string) {
	t.Helper()

	expectedLogSubstring := fmt.Sprintf("entry_point=%s", entryPoint)

	require.True(t,
		strings.Contains(result.LogOutput, expectedLogSubstring),
		"expected log output for entry point '%s' was not found in logs", entryPoint,
	)
}
