package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blackjack/internal/game"
	"blackjack/internal/ledger"
)

func restoreLog(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
}

func TestSetupLoggingToFile(t *testing.T) {
	restoreLog(t)
	path := filepath.Join(t.TempDir(), "blackjack.log")
	var stderr bytes.Buffer

	closer, err := setupLogging(path, &stderr)
	require.NoError(t, err)
	require.NotNil(t, closer)

	log.Printf("[ROUND FINISH] hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[ROUND FINISH] hello")
	assert.Empty(t, stderr.String())
}

func TestSetupLoggingRedirectedStderr(t *testing.T) {
	restoreLog(t)
	var stderr bytes.Buffer

	closer, err := setupLogging("", &stderr)
	require.NoError(t, err)
	assert.Nil(t, closer)

	log.Printf("[SESSION START] hello")
	assert.Contains(t, stderr.String(), "[SESSION START] hello")
}

func TestSetupLoggingBadPath(t *testing.T) {
	restoreLog(t)
	path := filepath.Join(t.TempDir(), "missing", "blackjack.log")

	_, err := setupLogging(path, &bytes.Buffer{})
	assert.Error(t, err)
}

func newLedgerSession(t *testing.T, results ...game.Result) (*ledger.Ledger, *game.Session) {
	t.Helper()
	led, err := ledger.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { led.Close() })

	sess := game.NewSession(100)
	require.NoError(t, led.StartSession(sess))
	for _, res := range results {
		sess.Rounds++
		sess.Chips += res.Delta
		require.NoError(t, led.RecordRound(sess, res))
	}
	return led, sess
}

func TestPrintSummaryPositiveNet(t *testing.T) {
	restoreLog(t)
	led, sess := newLedgerSession(t,
		game.Result{Bet: 1000, Outcome: game.OutcomeBlackjack, Delta: 1500},
		game.Result{Bet: 250, Outcome: game.OutcomeLoss, Delta: -250},
	)
	var out bytes.Buffer

	printSummary(&out, led, sess)
	assert.Contains(t, out.String(), "Rounds: 2  (won 1, lost 1, pushed 0)")
	assert.Contains(t, out.String(), "Blackjacks: 1  Doubles: 0  Restarts: 0")
	assert.Contains(t, out.String(), "Net: +1,250  Biggest win: 1,500  Final chips: 1,350")
}

func TestPrintSummaryNegativeNet(t *testing.T) {
	restoreLog(t)
	led, sess := newLedgerSession(t,
		game.Result{Bet: 40, Doubled: true, Outcome: game.OutcomeBust, Delta: -60},
	)
	var out bytes.Buffer

	printSummary(&out, led, sess)
	assert.Contains(t, out.String(), "Net: -60  Biggest win: 0  Final chips: 40")
	assert.Contains(t, out.String(), "Doubles: 1")
}

func TestPrintSummarySkipsEmptySession(t *testing.T) {
	restoreLog(t)
	led, sess := newLedgerSession(t)
	var out bytes.Buffer

	printSummary(&out, led, sess)
	assert.Empty(t, out.String())
}

// swapStdio points os.Stdin at input and os.Stdout at a temp file for the
// duration of the test, returning the stdout path.
func swapStdio(t *testing.T, input string) string {
	t.Helper()
	dir := t.TempDir()

	inPath := filepath.Join(dir, "stdin")
	require.NoError(t, os.WriteFile(inPath, []byte(input), 0o644))
	in, err := os.Open(inPath)
	require.NoError(t, err)

	outPath := filepath.Join(dir, "stdout")
	out, err := os.Create(outPath)
	require.NoError(t, err)

	oldIn, oldOut := os.Stdin, os.Stdout
	os.Stdin, os.Stdout = in, out
	t.Cleanup(func() {
		os.Stdin, os.Stdout = oldIn, oldOut
		in.Close()
		out.Close()
	})
	return outPath
}

func TestRunExitCodes(t *testing.T) {
	restoreLog(t)
	chdir(t, t.TempDir())
	t.Setenv("BLACKJACK_LOG_FILE", filepath.Join(t.TempDir(), "blackjack.log"))

	t.Run("bet zero ends cleanly", func(t *testing.T) {
		outPath := swapStdio(t, "0\n")
		assert.Equal(t, 0, run())

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "BLACKJACK  |  Chips: 100")
	})

	t.Run("bad config fails", func(t *testing.T) {
		swapStdio(t, "")
		t.Setenv("BLACKJACK_STARTING_CHIPS", "0")
		assert.Equal(t, 1, run())
	})

	t.Run("unopenable log file fails", func(t *testing.T) {
		swapStdio(t, "")
		t.Setenv("BLACKJACK_LOG_FILE", filepath.Join(t.TempDir(), "missing", "x.log"))
		assert.Equal(t, 1, run())
	})
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
