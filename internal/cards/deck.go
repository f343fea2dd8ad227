package cards

import (
	"errors"
	"math/rand"
)

// ErrDeckExhausted is returned by Draw once every card has been dealt.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered run of cards consumed front to back.
type Deck struct {
	cards []Card
	next  int
}

// NewDeck creates a standard 52-card deck shuffled with r.
func NewDeck(r *rand.Rand) *Deck {
	deck := make([]Card, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, v := range Ranks {
			deck = append(deck, Card{Rank: v, Suit: s})
		}
	}
	r.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return &Deck{cards: deck}
}

// NewStackedDeck returns a deck that deals cards in the given order.
func NewStackedDeck(cards ...Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Draw deals the next card.
func (d *Deck) Draw() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrDeckExhausted
	}
	c := d.cards[d.next]
	d.next++
	return c, nil
}

// Remaining reports how many cards are left to deal.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
