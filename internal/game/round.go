package game

import (
	"errors"
	"fmt"
	"log"

	"blackjack/internal/cards"
)

// ErrQuit is returned when the player abandons the game mid-round.
var ErrQuit = errors.New("player quit")

// Outcome is how a round ended for the player.
type Outcome string

const (
	OutcomeBlackjack       Outcome = "BLACKJACK"
	OutcomeDealerBlackjack Outcome = "DEALER_BLACKJACK"
	OutcomeBothBlackjack   Outcome = "BOTH_BLACKJACK"
	OutcomeBust            Outcome = "BUST"
	OutcomeDealerBust      Outcome = "DEALER_BUST"
	OutcomeWin             Outcome = "WIN"
	OutcomeLoss            Outcome = "LOSS"
	OutcomePush            Outcome = "PUSH"
)

// Won reports whether the player came out ahead.
func (o Outcome) Won() bool {
	return o == OutcomeBlackjack || o == OutcomeDealerBust || o == OutcomeWin
}

// Lost reports whether the player lost the bet.
func (o Outcome) Lost() bool {
	return o == OutcomeDealerBlackjack || o == OutcomeBust || o == OutcomeLoss
}

// Result summarises a finished round.
type Result struct {
	Bet         int // final bet, doubled if Doubled
	Doubled     bool
	Outcome     Outcome
	Delta       int // net chip change, including any double-down stake
	Player      []cards.Card
	Dealer      []cards.Card
	PlayerTotal int
	DealerTotal int
}

// Prompter is the screen and keyboard a round is played on.
type Prompter interface {
	Clear()
	Println(a ...any)
	Printf(format string, a ...any)
	ReadLine(prompt string) (string, error)
	ReadInt(prompt string) (int, error)
	Pause() error
}

type round struct {
	ui      Prompter
	deck    *cards.Deck
	session *Session
	bet     int
	doubled bool
	player  []cards.Card
	dealer  []cards.Card
}

// PlayRound plays one hand for bet against a fresh dealer, applying every
// chip movement to s as it happens. A round that was settled but whose
// closing prompt failed returns both its Result and the error.
func PlayRound(ui Prompter, deck *cards.Deck, s *Session, bet int) (Result, error) {
	r := &round{ui: ui, deck: deck, session: s, bet: bet}
	before := s.Chips

	outcome, err := r.play()
	if outcome == "" {
		return Result{}, err
	}

	return Result{
		Bet:         r.bet,
		Doubled:     r.doubled,
		Outcome:     outcome,
		Delta:       s.Chips - before,
		Player:      r.player,
		Dealer:      r.dealer,
		PlayerTotal: BestTotal(r.player),
		DealerTotal: BestTotal(r.dealer),
	}, err
}

func (r *round) play() (Outcome, error) {
	if err := r.deal(); err != nil {
		return "", err
	}
	log.Printf("[ROUND START] Session %s | Bet: %d | Player: %s | Dealer up: %s", r.session.ID, r.bet, FormatHand(r.player, false), r.dealer[0])

	if outcome, ok := r.naturals(); ok {
		return outcome, r.finish(outcome)
	}

	bust, err := r.playerTurn()
	if err != nil {
		return "", err
	}
	if bust {
		r.session.Chips -= r.bet
		return OutcomeBust, r.finish(OutcomeBust)
	}

	if err := r.dealerTurn(); err != nil {
		return "", err
	}
	outcome := r.settle()
	return outcome, r.finish(outcome)
}

func (r *round) draw(hand *[]cards.Card) error {
	c, err := r.deck.Draw()
	if err != nil {
		return fmt.Errorf("draw card: %w", err)
	}
	*hand = append(*hand, c)
	return nil
}

func (r *round) deal() error {
	for _, h := range []*[]cards.Card{&r.player, &r.dealer, &r.player, &r.dealer} {
		if err := r.draw(h); err != nil {
			return err
		}
	}
	return nil
}

func (r *round) naturals() (Outcome, bool) {
	playerBJ := IsBlackjack(r.player)
	dealerBJ := IsBlackjack(r.dealer)
	switch {
	case playerBJ && dealerBJ:
		return OutcomeBothBlackjack, true
	case playerBJ:
		r.session.Chips += r.bet * 3 / 2
		return OutcomeBlackjack, true
	case dealerBJ:
		r.session.Chips -= r.bet
		return OutcomeDealerBlackjack, true
	}
	return "", false
}

// playerTurn runs the command loop and reports whether the player busted.
func (r *round) playerTurn() (bool, error) {
	for {
		r.ui.Clear()
		r.ui.Println("Dealer: " + FormatHand(r.dealer, true))
		r.ui.Printf("You:    %s  (%d)\n", FormatHand(r.player, false), BestTotal(r.player))
		if r.doubled {
			r.ui.Printf("Bet: %d (doubled)\n", r.bet)
		} else {
			r.ui.Printf("Bet: %d\n", r.bet)
		}

		cmd, err := r.ui.ReadLine("Command [h=hit, s=stand, d=double, q=quit]: ")
		if err != nil {
			return false, err
		}

		switch cmd {
		case "q":
			log.Printf("[ROUND QUIT] Session %s | Bet: %d abandoned", r.session.ID, r.bet)
			return false, ErrQuit
		case "s":
			return false, nil
		case "h":
			if err := r.draw(&r.player); err != nil {
				return false, err
			}
			if BestTotal(r.player) > 21 {
				return true, nil
			}
		case "d":
			if r.doubled {
				if err := r.reject("Already doubled."); err != nil {
					return false, err
				}
				continue
			}
			if r.session.Chips < r.bet {
				if err := r.reject("Not enough chips to double."); err != nil {
					return false, err
				}
				continue
			}
			r.session.Chips -= r.bet
			r.bet *= 2
			r.doubled = true
			if err := r.draw(&r.player); err != nil {
				return false, err
			}
			log.Printf("[ROUND DOUBLE] Session %s | Bet: %d | Hand: %s", r.session.ID, r.bet, FormatHand(r.player, false))
			return BestTotal(r.player) > 21, nil
		default:
			if err := r.reject("Invalid command."); err != nil {
				return false, err
			}
		}
	}
}

func (r *round) reject(msg string) error {
	r.ui.Println(msg)
	return r.ui.Pause()
}

func (r *round) dealerTurn() error {
	for BestTotal(r.dealer) < 17 {
		if err := r.draw(&r.dealer); err != nil {
			return err
		}
	}
	return nil
}

func (r *round) settle() Outcome {
	p := BestTotal(r.player)
	d := BestTotal(r.dealer)
	switch {
	case d > 21:
		r.session.Chips += r.bet
		return OutcomeDealerBust
	case p > d:
		r.session.Chips += r.bet
		return OutcomeWin
	case p < d:
		r.session.Chips -= r.bet
		return OutcomeLoss
	default:
		return OutcomePush
	}
}

// finish reveals both hands with the outcome and waits for the player.
func (r *round) finish(outcome Outcome) error {
	r.ui.Clear()
	r.ui.Printf("Dealer: %s  (%d)\n", FormatHand(r.dealer, false), BestTotal(r.dealer))
	r.ui.Printf("You:    %s  (%d)\n", FormatHand(r.player, false), BestTotal(r.player))
	r.ui.Println(r.message(outcome))

	log.Printf("[ROUND FINISH] Session %s | Outcome: %s | Bet: %d | Player: %d | Dealer: %d | Chips: %d",
		r.session.ID, outcome, r.bet, BestTotal(r.player), BestTotal(r.dealer), r.session.Chips)

	return r.ui.Pause()
}

func (r *round) message(outcome Outcome) string {
	switch outcome {
	case OutcomeBothBlackjack:
		return "Push (both blackjack)."
	case OutcomeBlackjack:
		return fmt.Sprintf("Blackjack! You win +%d", r.bet*3/2)
	case OutcomeDealerBlackjack:
		return fmt.Sprintf("Dealer blackjack. You lose -%d", r.bet)
	case OutcomeBust:
		return fmt.Sprintf("Bust. You lose -%d", r.bet)
	case OutcomeDealerBust:
		return fmt.Sprintf("Dealer busts. You win +%d", r.bet)
	case OutcomeWin:
		return fmt.Sprintf("You win +%d", r.bet)
	case OutcomeLoss:
		return fmt.Sprintf("You lose -%d", r.bet)
	default:
		return "Push."
	}
}
