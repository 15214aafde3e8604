// Package flashcards sequences a module's flashcards: ordering, shuffle,
// wraparound and the front/back face.
package flashcards

import (
	"math/rand/v2"

	"github.com/abhisek/belajar/internal/catalog"
)

// Face is the visible side of the current card.
type Face int

const (
	Front Face = iota
	Back
)

func (f Face) String() string {
	if f == Back {
		return "back"
	}
	return "front"
}

// Deck walks a fixed set of cards. The zero value is an empty deck.
type Deck struct {
	cards    []catalog.Flashcard
	order    []int
	index    int
	face     Face
	shuffled bool
	rng      *rand.Rand
}

// NewDeck builds a deck in catalog order. The seed drives every shuffle
// performed on this deck, so the same seed yields the same permutations.
func NewDeck(cards []catalog.Flashcard, seed uint64) *Deck {
	d := &Deck{
		cards: cards,
		rng:   rand.New(rand.NewPCG(seed, seed)),
	}
	d.order = identity(len(cards))
	return d
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.cards) }

// Empty reports whether the deck has no cards.
func (d *Deck) Empty() bool { return len(d.cards) == 0 }

// Shuffled reports whether the deck currently uses a shuffled order.
func (d *Deck) Shuffled() bool { return d.shuffled }

// Face returns the visible side.
func (d *Deck) Face() Face { return d.face }

// Order returns the card indexes in presentation order.
func (d *Deck) Order() []int {
	out := make([]int, len(d.order))
	copy(out, d.order)
	return out
}

// SetShuffle switches between the catalog order and a fresh random
// permutation. The current position is clamped to the deck length.
func (d *Deck) SetShuffle(on bool) {
	d.shuffled = on
	if on && len(d.cards) > 0 {
		d.order = d.rng.Perm(len(d.cards))
	} else {
		d.order = identity(len(d.cards))
	}
	if d.index >= len(d.cards) {
		d.index = max(len(d.cards)-1, 0)
	}
}

// Current returns the card at the current position.
func (d *Deck) Current() (catalog.Flashcard, bool) {
	if d.Empty() {
		return catalog.Flashcard{}, false
	}
	return d.cards[d.order[d.index]], true
}

// Text returns the visible text of the current card.
func (d *Deck) Text() string {
	c, ok := d.Current()
	if !ok {
		return ""
	}
	if d.face == Back {
		return c.Back
	}
	return c.Front
}

// Next advances to the following card, wrapping to the first after the
// last, and shows its front.
func (d *Deck) Next() {
	if d.Empty() {
		return
	}
	d.index = (d.index + 1) % len(d.cards)
	d.face = Front
}

// Flip toggles the visible side.
func (d *Deck) Flip() {
	if d.Empty() {
		return
	}
	if d.face == Front {
		d.face = Back
	} else {
		d.face = Front
	}
}

// Position returns the 1-based position and the deck length. An empty
// deck reports 0, 0.
func (d *Deck) Position() (int, int) {
	if d.Empty() {
		return 0, 0
	}
	return d.index + 1, len(d.cards)
}
