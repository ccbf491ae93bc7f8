package generate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// removeBackgrounds runs each image through the background removal model.
// An image whose removal fails is kept as generated.
func (s *Service) removeBackgrounds(ctx context.Context, genID string, images []string) []string {
	out := make([]string, len(images))
	copy(out, images)
	one := func(ctx context.Context, i int) {
		locs, err := s.upstream.Locators(ctx, s.removeBg, map[string]any{"image": images[i]})
		if err != nil || len(locs) == 0 {
			ev := s.log.Warn().Str("generation_id", genID).Int("image", i)
			if err != nil {
				ev = ev.Str("err", s.sanitize(err.Error()))
			}
			ev.Msg("background removal failed; keeping original")
			return
		}
		out[i] = locs[0]
	}
	if s.parallel && len(images) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.maxPar)
		for i := range images {
			g.Go(func() error {
				one(gctx, i)
				return nil
			})
		}
		_ = g.Wait()
		return out
	}
	for i := range images {
		one(ctx, i)
	}
	return out
}
