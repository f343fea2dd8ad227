package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/google/uuid"

	"blackjack/internal/cards"
)

// Session is the player's state across rounds. It lives only as long as the
// process.
type Session struct {
	ID            string
	Chips         int
	StartingChips int
	Rounds        int
	Restarts      int
}

// NewSession starts a session holding startingChips.
func NewSession(startingChips int) *Session {
	return &Session{
		ID:            uuid.NewString(),
		Chips:         startingChips,
		StartingChips: startingChips,
	}
}

// Restart refills a bankrupt session.
func (s *Session) Restart() {
	s.Chips = s.StartingChips
	s.Restarts++
}

// Recorder keeps a history of the session. Failures are logged, never fatal.
type Recorder interface {
	RecordRound(s *Session, res Result) error
	RecordRestart(s *Session) error
}

// Game drives the betting loop for one session.
type Game struct {
	ui       Prompter
	recorder Recorder
	newDeck  func() *cards.Deck
}

// New returns a Game dealing a freshly shuffled deck from rng every round.
// rec may be nil.
func New(ui Prompter, rng *rand.Rand, rec Recorder) *Game {
	return &Game{
		ui:       ui,
		recorder: rec,
		newDeck:  func() *cards.Deck { return cards.NewDeck(rng) },
	}
}

// Run plays rounds until the player stops betting, quits, declines a restart
// or input runs out. Any other error ends the session and is returned.
func (g *Game) Run(s *Session) error {
	err := g.loop(s)
	switch {
	case err == nil:
		log.Printf("[SESSION END] Session %s | Rounds: %d | Chips: %d", s.ID, s.Rounds, s.Chips)
		return nil
	case errors.Is(err, ErrQuit), errors.Is(err, io.EOF):
		log.Printf("[SESSION END] Session %s | Reason: %v | Rounds: %d | Chips: %d", s.ID, err, s.Rounds, s.Chips)
		return nil
	default:
		return err
	}
}

func (g *Game) loop(s *Session) error {
	for {
		g.ui.Clear()
		g.ui.Printf("BLACKJACK  |  Chips: %d\n", s.Chips)

		if s.Chips <= 0 {
			g.ui.Println("You're out of chips.")
			answer, err := g.ui.ReadLine(fmt.Sprintf("Restart with %d? (y/n): ", s.StartingChips))
			if err != nil {
				return err
			}
			if answer != "y" {
				return nil
			}
			s.Restart()
			log.Printf("[SESSION RESTART] Session %s | Chips: %d", s.ID, s.Chips)
			if g.recorder != nil {
				if err := g.recorder.RecordRestart(s); err != nil {
					log.Printf("[LEDGER ERROR] Session %s: %v", s.ID, err)
				}
			}
			continue
		}

		bet, err := g.readBet(s)
		if err != nil {
			return err
		}
		if bet == 0 {
			return nil
		}

		res, err := PlayRound(g.ui, g.newDeck(), s, bet)
		if res.Outcome != "" {
			s.Rounds++
			if g.recorder != nil {
				if rerr := g.recorder.RecordRound(s, res); rerr != nil {
					log.Printf("[LEDGER ERROR] Session %s: %v", s.ID, rerr)
				}
			}
		}
		if err != nil {
			return err
		}
	}
}

// readBet prompts until the bet is 0 or within [1, chips].
func (g *Game) readBet(s *Session) (int, error) {
	for {
		bet, err := g.ui.ReadInt(fmt.Sprintf("Bet (1-%d, 0 to quit): ", s.Chips))
		if err != nil {
			return 0, err
		}
		if bet == 0 || (bet > 0 && bet <= s.Chips) {
			return bet, nil
		}
		g.ui.Println("Invalid bet.")
	}
}
