package cards

import "strconv"

// Suits in deck construction order.
var Suits = []string{"♠", "♥", "♦", "♣"}

// Ranks in deck construction order.
var Ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Card represents a playing card.
type Card struct {
	Rank string
	Suit string
}

// Value returns the blackjack point value of the card. Aces count 11 here;
// hand evaluation decides when one is worth 1.
func (c Card) Value() int {
	switch c.Rank {
	case "A":
		return 11
	case "K", "Q", "J":
		return 10
	default:
		v, _ := strconv.Atoi(c.Rank)
		return v
	}
}

// IsAce reports whether the card is an ace.
func (c Card) IsAce() bool {
	return c.Rank == "A"
}

func (c Card) String() string {
	return c.Rank + c.Suit
}
