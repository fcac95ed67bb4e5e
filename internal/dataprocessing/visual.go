package dataprocessing

import (
	"math"
	"sort"

	"leitor/pkg/contracts/domain"
)

// BuildVisualData derives every chart-ready series for the visual dashboard
// from a status-annotated student list and the insights computed over it.
func BuildVisualData(students []domain.StudentResult, insights domain.Insights) domain.VisualData {
	total := len(students)

	byBand := make(map[string]int, len(domain.StatusBands))
	for _, student := range students {
		if student.Status != nil {
			byBand[student.Status.ID]++
		}
	}
	statusSummary := make([]domain.StatusCount, 0, len(domain.StatusBands))
	for _, band := range domain.StatusBands {
		count := byBand[band.ID]
		percentage := 0.0
		if total > 0 {
			percentage = round1(float64(count) / float64(total) * 100)
		}
		statusSummary = append(statusSummary, domain.StatusCount{
			ID:         band.ID,
			Label:      band.Label,
			Range:      band.Range,
			Color:      band.Color,
			Bg:         band.Bg,
			Icon:       band.Icon,
			Count:      count,
			Percentage: percentage,
		})
	}

	classChart := domain.ClassChart{
		Labels: make([]string, 0, len(insights.Classes)),
		Means:  make([]float64, 0, len(insights.Classes)),
		Colors: make([]string, 0, len(insights.Classes)),
	}
	for _, class := range insights.Classes {
		classChart.Labels = append(classChart.Labels, class.Name)
		classChart.Means = append(classChart.Means, class.Mean)
		classChart.Colors = append(classChart.Colors, domain.ClassifyScore(class.Mean).Color)
	}

	descending := make([]float64, 0, total)
	for _, student := range students {
		descending = append(descending, student.Score)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(descending)))

	sparkline := domain.Series{Labels: make([]float64, 0, total), Values: descending}
	for i := range descending {
		sparkline.Labels = append(sparkline.Labels, float64(i+1))
	}

	scatter := make([]domain.ScatterPoint, 0, total)
	for _, student := range students {
		scatter = append(scatter, domain.ScatterPoint{
			X:     round2(student.ScorePercent),
			Y:     round2(student.CorrectPercent),
			Name:  student.Name,
			Class: student.Class,
		})
	}

	return domain.VisualData{
		StatusSummary:   statusSummary,
		ClassChart:      classChart,
		Sparkline:       sparkline,
		Scatter:         scatter,
		Boxplot:         buildBoxplot(descending),
		PercentileCurve: buildPercentileCurve(descending),
		Top:             topByScore(students, 5, true),
		Bottom:          topByScore(students, 5, false),
	}
}

// buildBoxplot computes the five-number summary from scores sorted
// descending. With fewer than two scores the quartiles collapse onto the
// extremes; with none, everything is 0.
func buildBoxplot(descending []float64) domain.Boxplot {
	if len(descending) == 0 {
		return domain.Boxplot{}
	}

	ascending := make([]float64, len(descending))
	copy(ascending, descending)
	sort.Float64s(ascending)

	box := domain.Boxplot{
		Min:    round2(ascending[0]),
		Median: round2(median(ascending)),
		Max:    round2(ascending[len(ascending)-1]),
	}
	if len(ascending) >= 2 {
		q1, _, q3 := quartiles(ascending)
		box.Q1 = round2(q1)
		box.Q3 = round2(q3)
	} else {
		box.Q1 = box.Min
		box.Q3 = box.Max
	}
	return box
}

// buildPercentileCurve spaces the population evenly across a 0..100 x-axis,
// with values ascending so the curve rises to the best score.
func buildPercentileCurve(descending []float64) domain.Series {
	n := len(descending)
	curve := domain.Series{Labels: make([]float64, 0, n), Values: make([]float64, 0, n)}
	step := 100.0 / float64(max(n-1, 1))
	for i := 0; i < n; i++ {
		curve.Labels = append(curve.Labels, round1(float64(i)*step))
		curve.Values = append(curve.Values, descending[n-1-i])
	}
	return curve
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
