package analysis

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/marcoviero/daily-diary/internal/common"
	"github.com/marcoviero/daily-diary/internal/stats"
)

// minCorrelationSamples is the smallest paired sample accepted for a
// same-day correlation test.
const minCorrelationSamples = 5

// AnalyzeCorrelations computes the same-day association between the target
// metric and every candidate factor with enough paired data. Results are
// sorted by absolute correlation descending; ties preserve factor order.
// Factors that cannot be tested are omitted, never errors.
func (e *Engine) AnalyzeCorrelations(ctx context.Context, target string, start, end time.Time) ([]CorrelationResult, error) {
	if target == "" {
		target = DefaultTarget
	}
	extractTarget, ok := targetColumns[target]
	if !ok {
		common.LogDebug("unknown correlation target", common.Fields{"target": target})
		return nil, nil
	}

	table, err := e.BuildFeatureTable(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if table.Empty() {
		return nil, nil
	}

	var results []CorrelationResult

	for _, factor := range continuousFactors() {
		x, y := pairedContinuous(table, factor.Value, extractTarget)
		corr, skip := stats.Pearson(x, y, minCorrelationSamples)
		if skip != stats.SkipNone {
			logSkip(factor.Name, skip)
			continue
		}
		results = append(results, CorrelationResult{
			Factor:         factor.Name,
			Correlation:    corr.R,
			PValue:         corr.P,
			NSamples:       corr.N,
			Interpretation: interpretCorrelation(factor.Domain, factor.Name, corr.R, corr.P),
		})
	}

	binary := binaryFactors()
	binary = append(binary, lifestyleBinaryFactors(table)...)
	for _, factor := range binary {
		b, y := pairedBinary(table, factor.Value, extractTarget)
		corr, skip := stats.PointBiserial(b, y, minCorrelationSamples)
		if skip != stats.SkipNone {
			logSkip(factor.Name, skip)
			continue
		}
		results = append(results, CorrelationResult{
			Factor:         factor.Name,
			Correlation:    corr.R,
			PValue:         corr.P,
			NSamples:       corr.N,
			Interpretation: interpretCorrelation(factor.Domain, factor.Name, corr.R, corr.P),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return math.Abs(results[i].Correlation) > math.Abs(results[j].Correlation)
	})

	return results, nil
}

// pairedContinuous gathers the rows where both factor and target are non-null.
func pairedContinuous(t *FeatureTable, factor, target func(*FeatureRow) (float64, bool)) ([]float64, []float64) {
	var x, y []float64
	for i := range t.Rows {
		row := &t.Rows[i]
		fv, fok := factor(row)
		tv, tok := target(row)
		if fok && tok {
			x = append(x, fv)
			y = append(y, tv)
		}
	}
	return x, y
}

// pairedBinary gathers the rows where both the boolean factor and the target are non-null.
func pairedBinary(t *FeatureTable, factor func(*FeatureRow) (bool, bool), target func(*FeatureRow) (float64, bool)) ([]bool, []float64) {
	var b []bool
	var y []float64
	for i := range t.Rows {
		row := &t.Rows[i]
		fv, fok := factor(row)
		tv, tok := target(row)
		if fok && tok {
			b = append(b, fv)
			y = append(y, tv)
		}
	}
	return b, y
}

func logSkip(factor string, reason stats.SkipReason) {
	common.LogDebug("factor skipped", common.Fields{
		"factor": factor,
		"reason": reason.String(),
	})
}
