package gamedata

import (
	"fmt"
	"strconv"
	"time"
)

// DifficultyDef defines one difficulty level loaded from JSON.
type DifficultyDef struct {
	ID       string `json:"id"`       // Unique identifier (e.g., "easy")
	Name     string `json:"name"`     // Display name (e.g., "Easy")
	Category string `json:"category"` // Image family used for card identities (e.g., "animal")
	Pairs    int    `json:"pairs"`    // Number of distinct identities, each dealt twice
	Seconds  int    `json:"seconds"`  // Countdown budget for one game
}

// Identities returns the card identities for this difficulty: category1..categoryN.
func (d *DifficultyDef) Identities() []string {
	ids := make([]string, d.Pairs)
	for i := range ids {
		ids[i] = d.Category + strconv.Itoa(i+1)
	}
	return ids
}

// CardCount returns the deck size for this difficulty.
func (d *DifficultyDef) CardCount() int {
	return d.Pairs * 2
}

// TimeBudget returns the countdown budget as a duration.
func (d *DifficultyDef) TimeBudget() time.Duration {
	return time.Duration(d.Seconds) * time.Second
}

// ImagePath returns the front-face image for a card identity.
func ImagePath(identity string) string {
	return "images/" + identity + ".jpg"
}

// validate reports the first problem with a definition, if any.
func (d *DifficultyDef) validate() error {
	switch {
	case d.ID == "":
		return fmt.Errorf("difficulty with empty id")
	case d.Category == "":
		return fmt.Errorf("difficulty %s: empty category", d.ID)
	case d.Pairs <= 0:
		return fmt.Errorf("difficulty %s: pairs must be positive, got %d", d.ID, d.Pairs)
	case d.Seconds <= 0:
		return fmt.Errorf("difficulty %s: seconds must be positive, got %d", d.ID, d.Seconds)
	}
	return nil
}

// DifficultiesFile represents the structure of difficulties.json.
type DifficultiesFile struct {
	Difficulties []DifficultyDef `json:"difficulties"`
}

// LoadDifficulties loads difficulty definitions from the embedded difficulties.json file.
func LoadDifficulties() ([]DifficultyDef, error) {
	file, err := Load[DifficultiesFile]("difficulties.json")
	if err != nil {
		return nil, err
	}
	return file.Difficulties, nil
}
