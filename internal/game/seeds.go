package game

import (
	"context"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// SeedPool serves seed words from memory. Load it before the loop starts;
// afterwards it is only touched from the loop. A difficulty that was never
// loaded is fetched from the source on first use and kept.
type SeedPool struct {
	source  SeedSource
	byLevel map[string][]string
}

func NewSeedPool(source SeedSource) *SeedPool {
	return &SeedPool{source: source, byLevel: make(map[string][]string)}
}

func (p *SeedPool) Load(ctx context.Context, difficulties []string) error {
	for _, d := range difficulties {
		if err := p.fetch(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (p *SeedPool) fetch(ctx context.Context, difficulty string) error {
	words, err := p.source.Seeds(ctx, []string{difficulty})
	if err != nil {
		return err
	}
	p.byLevel[difficulty] = words
	return nil
}

// Seeds returns the sorted union of the words under difficulties.
func (p *SeedPool) Seeds(ctx context.Context, difficulties []string) ([]string, error) {
	union := set.New[string](0)
	for _, d := range difficulties {
		if _, ok := p.byLevel[d]; !ok {
			if err := p.fetch(ctx, d); err != nil {
				return nil, err
			}
		}
		union.InsertSlice(p.byLevel[d])
	}
	words := union.Slice()
	slices.Sort(words)
	return words, nil
}
