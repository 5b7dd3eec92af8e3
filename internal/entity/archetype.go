package entity

import "github.com/vovakirdan/spacewar/internal/config"

// Archetype is one row of the fixed enemy table.
type Archetype struct {
	Radius    float64
	Life      int
	Damage    int
	Score     int
	BaseSpeed float64 // px/s before the difficulty factor
	Tag       string  // Visual tag, used by renderers to pick a color
}

// Archetypes builds the table from configuration, preserving order so
// variant indices stay stable.
func Archetypes(rows []config.EnemyConfig) []Archetype {
	out := make([]Archetype, len(rows))
	for i, r := range rows {
		out[i] = Archetype{
			Radius:    r.Radius,
			Life:      r.Life,
			Damage:    r.Damage,
			Score:     r.Score,
			BaseSpeed: r.BaseSpeed,
			Tag:       r.Tag,
		}
	}
	return out
}
