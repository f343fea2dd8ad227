package game

import (
	"strings"

	"blackjack/internal/cards"
)

// BestTotal scores a hand, counting each ace as 1 instead of 11 only while
// the total would otherwise exceed 21.
func BestTotal(hand []cards.Card) int {
	score := 0
	aces := 0
	for _, c := range hand {
		score += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}

// IsBlackjack reports whether hand is a natural: two cards worth 21.
func IsBlackjack(hand []cards.Card) bool {
	return len(hand) == 2 && BestTotal(hand) == 21
}

// FormatHand renders hand as "[A♠, 10♥]". With hideSecond the second card
// is masked and anything after it is dropped.
func FormatHand(hand []cards.Card, hideSecond bool) string {
	if hideSecond && len(hand) >= 2 {
		return "[" + hand[0].String() + ", ??]"
	}
	s := make([]string, 0, len(hand))
	for _, c := range hand {
		s = append(s, c.String())
	}
	return "[" + strings.Join(s, ", ") + "]"
}
