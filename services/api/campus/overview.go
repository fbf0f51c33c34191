package campus

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Tile is one domain's entry on the dashboard overview.
type Tile struct {
	Domain   Domain    `json:"domain"`
	Zone     string    `json:"zone"`
	Headline *Headline `json:"headline,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Overview is every domain analyzed with default options.
type Overview struct {
	GeneratedAt string `json:"generated_at"`
	Tiles       []Tile `json:"tiles"`
}

// Overview runs every analyzer on its default zone with at most the
// configured number in flight. A failing domain becomes an error tile; only
// cancellation fails the whole overview.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	tiles := make([]Tile, len(Domains))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, d := range Domains {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tile := Tile{Domain: d, Zone: d.DefaultZone()}
			res, err := s.Analyze(gctx, Request{Domain: d})
			if err != nil {
				tile.Error = err.Error()
			} else {
				tile.Headline = &res.Headline
			}
			tiles[i] = tile
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return Overview{GeneratedAt: s.clock().UTC().Format(time.RFC3339), Tiles: tiles}, nil
}
