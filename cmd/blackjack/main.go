package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"blackjack/internal/config"
	"blackjack/internal/console"
	"blackjack/internal/game"
	"blackjack/internal/ledger"
)

func main() {
	os.Exit(run())
}

// run plays one session and returns the process exit code. Returning instead
// of exiting lets the deferred closes run on every path.
func run() int {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		return 1
	}

	// 2. Route logs away from the game screen
	logFile, err := setupLogging(cfg.LogFile, os.Stderr)
	if err != nil {
		log.Printf("Error opening log file: %v", err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// 3. Initialize Ledger
	var rec game.Recorder
	led, err := ledger.New(cfg.Database)
	if err != nil {
		log.Printf("Warning: ledger unavailable: %v (session summary disabled)", err)
	} else {
		defer led.Close()
		rec = led
	}

	// 4. Start Session
	sess := game.NewSession(cfg.StartingChips)
	if led != nil {
		if err := led.StartSession(sess); err != nil {
			log.Printf("Warning: could not record session start: %v", err)
		}
	}
	log.Printf("[SESSION START] Session %s | Chips: %d", sess.ID, sess.Chips)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ui := console.New(os.Stdin, os.Stdout)
	g := game.New(ui, rng, rec)

	// 5. Play until the player stops
	if err := g.Run(sess); err != nil {
		log.Printf("Error during play: %v", err)
		if logFile != nil || console.IsTerminal(os.Stderr) {
			fmt.Fprintf(os.Stderr, "Error during play: %v\n", err)
		}
		return 1
	}

	if led != nil {
		printSummary(os.Stdout, led, sess)
	}
	return 0
}

// setupLogging sends log output to path when set, to stderr when stderr is
// redirected, and nowhere when stderr shares the terminal with the game.
func setupLogging(path string, stderr io.Writer) (io.Closer, error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		log.SetOutput(f)
		return f, nil
	}
	if console.IsTerminal(stderr) {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(stderr)
	}
	return nil, nil
}

func printSummary(w io.Writer, led *ledger.Ledger, sess *game.Session) {
	sum, err := led.Summary(sess.ID)
	if err != nil {
		log.Printf("Warning: could not build session summary: %v", err)
		return
	}
	if sum.Rounds == 0 {
		return
	}

	net := humanize.Comma(int64(sum.Net))
	if sum.Net > 0 {
		net = "+" + net
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rounds: %s  (won %d, lost %d, pushed %d)\n", humanize.Comma(int64(sum.Rounds)), sum.Wins, sum.Losses, sum.Pushes)
	fmt.Fprintf(w, "Blackjacks: %d  Doubles: %d  Restarts: %d\n", sum.Blackjacks, sum.Doubles, sum.Restarts)
	fmt.Fprintf(w, "Net: %s  Biggest win: %s  Final chips: %s\n", net, humanize.Comma(int64(sum.BiggestWin)), humanize.Comma(int64(sess.Chips)))
}
