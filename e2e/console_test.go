//go:build e2e && unix

package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordingConfig = `version = 1
log_level = "debug"

[listeners]
"console.started" = ["log"]
"console.stopped" = ["log"]
`

func startConsole(t *testing.T, config string) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	_, err := tf.CreateWorkspace(config)
	require.NoError(t, err)
	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "console should draw its title")
	return tf
}

func TestBindAndEmit(t *testing.T) {
	t.Parallel()
	tf := startConsole(t, "")

	require.NoError(t, tf.Type("on tick"))
	require.True(t, tf.SeePlain("#1 on tick -> print"))

	require.NoError(t, tf.Type("emit tick 1 two"))
	if !tf.SeePlain(`<- tick [1 "two"]`) {
		tf.DumpTailOnFail(t, "emit", 4096)
		t.Fatal("listener output not shown")
	}

	require.NoError(t, tf.Type("off 1"))
	require.True(t, tf.SeePlain("#1 unbound from tick"))
	require.NoError(t, tf.Type("emit tick"))
	require.True(t, tf.SeePlain("tick has no listeners"))
}

func TestOnceListenerRunsOnce(t *testing.T) {
	t.Parallel()
	tf := startConsole(t, "")

	require.NoError(t, tf.Type("once boot"))
	require.NoError(t, tf.Type("emit boot"))
	require.True(t, tf.SeePlain("emitted boot"))
	require.NoError(t, tf.Type("emit boot"))
	require.True(t, tf.SeePlain("boot has no listeners"))
}

func TestFailingListenerKeepsConsoleAlive(t *testing.T) {
	t.Parallel()
	tf := startConsole(t, "")

	require.NoError(t, tf.Type("on boom fail"))
	require.NoError(t, tf.Type("emit boom"))
	require.NoError(t, tf.WaitForE(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), "listener failed")
	}, 3*time.Second, "panic should be reported in the console"))

	require.NoError(t, tf.Type("events"))
	require.True(t, tf.SeePlain("boom (1)"))
}

func TestQuitCommandExits(t *testing.T) {
	t.Parallel()
	tf := startConsole(t, recordingConfig)

	require.NoError(t, tf.Type("quit"))
	require.NoError(t, tf.WaitExit(2*time.Second))

	logData, err := os.ReadFile(filepath.Join(tf.workspace, "eventhub.log"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(logData), "console.stopped"), "stop event should be logged")
}

func TestCtrlCExits(t *testing.T) {
	t.Parallel()
	tf := startConsole(t, "")

	require.NoError(t, tf.SendCtrlC())
	require.NoError(t, tf.WaitExit(2*time.Second))
}

func TestHistoryRecall(t *testing.T) {
	t.Parallel()
	tf := startConsole(t, "")

	require.NoError(t, tf.Type("on ping"))
	require.True(t, tf.SeePlain("#1 on ping"))

	// Recall and resubmit: a second, independent binding
	require.NoError(t, tf.SendKeys(KeyUp))
	require.NoError(t, tf.SendEnter())
	require.True(t, tf.SeePlain("#2 on ping"))
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := startConsole(t, "")

	require.NoError(t, tf.SendKeys(KeyF1))
	require.True(t, tf.SeePlain("Lifecycle events"), "pager should show the reference")

	require.NoError(t, tf.SendKeys("q"))
	require.NoError(t, tf.Type("events"))
	require.True(t, tf.SeePlain("console.started (1)"))
}

func TestHelpFlag(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err)
	for _, want := range []string{"console", "serve", "emit", "init", "--config", "--production"} {
		assert.Contains(t, string(out), want)
	}
}

func TestEmitSubcommandExitCode(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cmd := exec.Command(binPath, "emit", "nothing.here")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
	assert.Contains(t, string(out), "nothing.here has no listeners")
}
