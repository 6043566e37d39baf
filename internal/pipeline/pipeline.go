// Package pipeline runs one report: fetch, normalize, window, aggregate, rank, render
// and publish. Each run is a full recomputation with no state carried between runs.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/XavierBriggs/Pythia/internal/publisher"
	"github.com/XavierBriggs/Pythia/internal/report"
	"github.com/XavierBriggs/Pythia/internal/spreads"
	"github.com/XavierBriggs/Pythia/pkg/contracts"
	"go.uber.org/zap"
)

// Runner wires the vendor adapter and sport module to the report outputs
type Runner struct {
	adapter   contracts.VendorAdapter
	sport     contracts.SportModule
	presenter *report.Presenter
	publisher publisher.Publisher
	outputDir string
	logger    *zap.Logger
}

// Result is what one run produced
type Result struct {
	Report    *report.Report
	Artifacts *report.Artifacts
}

// NewRunner creates a runner. A nil publisher disables publishing.
func NewRunner(
	adapter contracts.VendorAdapter,
	sport contracts.SportModule,
	presenter *report.Presenter,
	pub publisher.Publisher,
	outputDir string,
	logger *zap.Logger,
) *Runner {
	if pub == nil {
		pub = publisher.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		adapter:   adapter,
		sport:     sport,
		presenter: presenter,
		publisher: pub,
		outputDir: outputDir,
		logger:    logger.With(zap.String("sport", sport.GetSportKey())),
	}
}

// Run executes the full pipeline once. now is captured by the caller and used for
// both the week window and the report timestamp.
func (r *Runner) Run(ctx context.Context, runID string, now time.Time) (*Result, error) {
	start := time.Now()
	logger := r.logger.With(zap.String("run_id", runID))

	outcome, err := r.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	fetchDuration := time.Since(start)

	rep, err := r.Build(outcome, runID, now)
	if err != nil {
		return nil, err
	}

	artifacts, err := report.WriteArtifacts(r.outputDir, rep, r.presenter.Location())
	if err != nil {
		return nil, fmt.Errorf("write artifacts: %w", err)
	}

	// Files are the source of truth; a publish failure only loses the notification
	if err := r.publisher.Publish(ctx, rep); err != nil {
		logger.Warn("publish report failed", zap.Error(err))
	}

	fields := []zap.Field{
		zap.Bool("no_games", rep.NoGames),
		zap.Int("rows", len(rep.Rows)),
		zap.String("html", artifacts.HTMLPath),
		zap.Duration("fetch", fetchDuration),
		zap.Duration("total", time.Since(start)),
	}
	if artifacts.JSONPath != "" {
		fields = append(fields, zap.String("json", artifacts.JSONPath))
	}
	logger.Info("run complete", fields...)

	return &Result{Report: rep, Artifacts: artifacts}, nil
}

// Fetch requests the sport's spread market from the vendor
func (r *Runner) Fetch(ctx context.Context) (Outcome, error) {
	market := r.sport.GetSpreadMarket()
	if !r.adapter.SupportsMarket(market) {
		return nil, fmt.Errorf("vendor does not support market %q", market)
	}

	events, err := r.adapter.FetchOdds(ctx, r.sport.GetFetchOptions())
	if err != nil {
		return nil, fmt.Errorf("fetch odds: %w", err)
	}

	if limits := r.adapter.GetRateLimits(); limits != nil && limits.Known {
		r.logger.Info("odds api quota",
			zap.Int("requests_remaining", limits.RequestsRemaining),
			zap.Int("requests_used", limits.RequestsUsed),
		)
	}

	r.logger.Info("fetched events", zap.Int("events", len(events)))

	if len(events) == 0 {
		return NoGames{}, nil
	}
	return Games{Events: events}, nil
}

// Build turns a fetch outcome into a report. NoGames yields the placeholder report;
// Games runs the events through the spreads stages.
func (r *Runner) Build(outcome Outcome, runID string, now time.Time) (*report.Report, error) {
	now = now.UTC()

	switch o := outcome.(type) {
	case NoGames:
		return report.NewNoGamesReport(runID, r.sport.GetSportKey(), r.sport.GetDisplayName(), now), nil

	case Games:
		rows, err := spreads.Normalize(o.Events, r.sport.GetSpreadMarket())
		if err != nil {
			return nil, fmt.Errorf("normalize events: %w", err)
		}

		weekEnd := r.sport.WeekEnd(now)
		inWindow := spreads.FilterWeek(rows, now, weekEnd)
		aggregated := spreads.Aggregate(inWindow)

		ranked, err := spreads.Rank(aggregated)
		if err != nil {
			return nil, fmt.Errorf("rank spreads: %w", err)
		}

		r.logger.Debug("pipeline stages",
			zap.Int("normalized", len(rows)),
			zap.Int("in_window", len(inWindow)),
			zap.Int("aggregated", len(aggregated)),
			zap.Time("week_end", weekEnd),
		)

		rep := report.NewReport(runID, r.sport.GetSportKey(), r.sport.GetDisplayName(), now, weekEnd,
			r.presenter.Rows(ranked))
		return rep, nil

	default:
		return nil, fmt.Errorf("unknown outcome %T", outcome)
	}
}
