package crm

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PushReport summarizes a bulk push.
type PushReport struct {
	Total  int `json:"total"`
	Pushed int `json:"pushed"`
	Failed int `json:"failed"`
}

// PushAll pushes every stored lead to the external CRM synchronously,
// fanning out across workers. Unlike the queued per-lead sync this reports
// failures, so it can back a manual "sync everything now" action.
func (s *Service) PushAll(ctx context.Context, workers int) (PushReport, error) {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()
	if !cfg.SyncReady() {
		return PushReport{}, eris.New("crm: sync is not configured")
	}
	pusher := s.opts.Pusher(cfg)

	leads, err := s.GetAll(ctx)
	if err != nil {
		return PushReport{}, err
	}
	if workers <= 0 {
		workers = 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	results := make(chan error, len(leads))
	for i := range leads {
		lead := leads[i]
		g.Go(func() error {
			err := pusher.Push(gctx, &lead)
			if err != nil {
				zap.L().Warn("crm: push failed",
					zap.String("lead_id", lead.ID),
					zap.Error(err),
				)
			}
			results <- err
			// Individual failures do not abort the batch.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PushReport{}, eris.Wrap(err, "crm: push all")
	}
	close(results)

	report := PushReport{Total: len(leads)}
	for err := range results {
		if err != nil {
			report.Failed++
		} else {
			report.Pushed++
		}
	}
	return report, nil
}
