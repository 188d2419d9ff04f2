package memory

import (
	"math/rand"

	"github.com/samdwyer/memorygame/internal/gamedata"
)

// Deck is the ordered row of cards dealt for one game.
type Deck []Card

// NewOrderedDeck deals every identity of def twice, unshuffled:
// identities 1..N followed by 1..N again.
func NewOrderedDeck(def *gamedata.DifficultyDef) Deck {
	ids := def.Identities()
	deck := make(Deck, 0, len(ids)*2)
	for round := 0; round < 2; round++ {
		for _, id := range ids {
			deck = append(deck, Card{Identity: id})
		}
	}
	return deck
}

// NewDeck deals a shuffled deck for def.
func NewDeck(def *gamedata.DifficultyDef, rng *rand.Rand) Deck {
	deck := NewOrderedDeck(def)
	deck.Shuffle(rng)
	return deck
}

// Shuffle permutes the deck in place (Fisher-Yates).
func (d Deck) Shuffle(rng *rand.Rand) {
	for i := len(d) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Counts returns how many cards carry each identity.
func (d Deck) Counts() map[string]int {
	counts := make(map[string]int)
	for _, c := range d {
		counts[c.Identity]++
	}
	return counts
}

// ValidFor reports whether the deck holds each identity of def exactly twice
// and nothing else.
func (d Deck) ValidFor(def *gamedata.DifficultyDef) bool {
	if def == nil || len(d) != def.CardCount() {
		return false
	}
	counts := d.Counts()
	if len(counts) != def.Pairs {
		return false
	}
	for _, id := range def.Identities() {
		if counts[id] != 2 {
			return false
		}
	}
	return true
}

// clone copies the deck so callers cannot mutate session state.
func (d Deck) clone() Deck {
	if d == nil {
		return nil
	}
	out := make(Deck, len(d))
	copy(out, d)
	return out
}
