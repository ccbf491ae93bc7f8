package generate

import (
	"context"
	"time"
)

// Check outcomes.
const (
	CheckOK      = "ok"
	CheckFailed  = "failed"
	CheckSkipped = "skipped"
)

// checkPrompt is sent to every model during a smoke check.
const checkPrompt = "masterpiece, best quality, anime style, 1girl with blue hair"

// CheckResult is the smoke-check outcome of one model.
type CheckResult struct {
	ID       string
	Name     string
	Status   string
	Duration time.Duration
	Error    string
}

// CheckModels issues one single-output call per image model. Models that
// require a reference image are skipped.
func (s *Service) CheckModels(ctx context.Context) ([]CheckResult, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	var out []CheckResult
	for _, d := range s.reg.Models() {
		r := CheckResult{ID: d.ID, Name: d.Name}
		if d.RequiresImage {
			r.Status = CheckSkipped
			out = append(out, r)
			continue
		}
		start := time.Now()
		locs, err := s.upstream.Locators(ctx, d.Ref, map[string]any{"prompt": checkPrompt, "num_outputs": 1})
		r.Duration = time.Since(start)
		switch {
		case err != nil:
			r.Status = CheckFailed
			r.Error = s.sanitize(err.Error())
		case len(locs) == 0:
			r.Status = CheckFailed
			r.Error = "no outputs"
		default:
			r.Status = CheckOK
		}
		out = append(out, r)
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
	}
	return out, nil
}
