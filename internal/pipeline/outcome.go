package pipeline

import "github.com/XavierBriggs/Pythia/pkg/models"

// Outcome is what the fetch stage produced: either NoGames or Games
type Outcome interface {
	outcome()
}

// NoGames means the vendor listed no events at all
type NoGames struct{}

// Games carries the events returned by the vendor
type Games struct {
	Events []models.Event
}

func (NoGames) outcome() {}
func (Games) outcome() {}
