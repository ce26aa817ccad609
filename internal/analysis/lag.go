package analysis

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/marcoviero/daily-diary/internal/stats"
)

// Lag analysis thresholds. Screening is deliberately looser than the
// reporting significance level so borderline delayed effects still surface;
// they stay flagged non-significant unless they clear 0.05.
const (
	minLagSamples     = 10
	lagScreeningLevel = 0.1
)

// AnalyzeLagCorrelations tests each continuous factor against the target at
// every lag in [0, MaxLagDays] and reports the lag with the strongest
// screened association per factor. A factor is only emitted when its winning
// lag has n >= 10 and p < 0.1. Results sort significant-first, then by
// absolute correlation descending.
func (e *Engine) AnalyzeLagCorrelations(ctx context.Context, target string, start, end time.Time) ([]LagCorrelationResult, error) {
	if target == "" {
		target = DefaultTarget
	}
	extractTarget, ok := targetColumns[target]
	if !ok {
		return nil, nil
	}

	table, err := e.BuildFeatureTable(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if table.Empty() {
		return nil, nil
	}

	var results []LagCorrelationResult

	for _, factor := range continuousFactors() {
		byLag := make([]LagResult, 0, e.opts.MaxLagDays+1)
		best := -1

		for lag := 0; lag <= e.opts.MaxLagDays; lag++ {
			x, y := pairedAtLag(table, factor.Value, extractTarget, lag)
			corr, skip := stats.Pearson(x, y, minLagSamples)
			if skip != stats.SkipNone {
				logSkip(factor.Name, skip)
				continue
			}

			byLag = append(byLag, LagResult{
				LagDays:     lag,
				Correlation: corr.R,
				PValue:      corr.P,
				NSamples:    corr.N,
			})

			if corr.P < lagScreeningLevel {
				idx := len(byLag) - 1
				if best < 0 || math.Abs(corr.R) > math.Abs(byLag[best].Correlation) {
					best = idx
				}
			}
		}

		if best < 0 {
			continue
		}

		winner := byLag[best]
		results = append(results, LagCorrelationResult{
			Factor:         factor.Name,
			OptimalLag:     winner.LagDays,
			Correlation:    winner.Correlation,
			PValue:         winner.PValue,
			NSamples:       winner.NSamples,
			ByLag:          byLag,
			Significant:    winner.PValue < significanceLevel,
			Interpretation: interpretLag(factor.Name, winner.LagDays, winner.Correlation, winner.PValue),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Significant != results[j].Significant {
			return results[i].Significant
		}
		return math.Abs(results[i].Correlation) > math.Abs(results[j].Correlation)
	})

	return results, nil
}

// pairedAtLag pairs the factor value from `lag` rows earlier with the target
// on the current row. Lag 0 is the same-day pairing. The shift is positional
// over the sorted sequence, matching the prev-day columns.
func pairedAtLag(t *FeatureTable, factor, target func(*FeatureRow) (float64, bool), lag int) ([]float64, []float64) {
	var x, y []float64
	for i := lag; i < len(t.Rows); i++ {
		fv, fok := factor(&t.Rows[i-lag])
		tv, tok := target(&t.Rows[i])
		if fok && tok {
			x = append(x, fv)
			y = append(y, tv)
		}
	}
	return x, y
}
