package dataprocessing

import (
	"sort"
	"strings"

	"leitor/pkg/contracts/domain"
)

// BuildQuestionMetrics combines the global question bank with the answers
// of a (possibly filtered) student list into per-question difficulty
// records, sorted hardest first. Blank answers count toward the student
// total but never toward the accuracy denominator.
func BuildQuestionMetrics(students []domain.StudentResult, bank map[string]domain.QuestionStats) []domain.QuestionMetric {
	type counter struct {
		key      string
		weight   float64
		answered int
		blank    int
		correct  int
	}
	counters := make(map[string]*counter, len(bank))
	for label, stats := range bank {
		counters[label] = &counter{key: stats.Key, weight: stats.Weight}
	}

	for _, student := range students {
		for label, key := range student.AnswerKey {
			if key == "" {
				continue
			}
			entry, ok := counters[label]
			if !ok {
				entry = &counter{key: key}
				counters[label] = entry
			}
			answer, present := student.Answers[label]
			if !present || answer == "" {
				entry.blank++
				continue
			}
			entry.answered++
			if answer == key {
				entry.correct++
			}
		}
	}

	metrics := make([]domain.QuestionMetric, 0, len(counters))
	for label, entry := range counters {
		rate := 0.0
		if entry.answered > 0 {
			rate = round2(float64(entry.correct) / float64(entry.answered) * 100)
		}
		metrics = append(metrics, domain.QuestionMetric{
			Label:         label,
			Key:           entry.key,
			Weight:        entry.weight,
			Answered:      entry.answered,
			Blank:         entry.blank,
			TotalStudents: entry.answered + entry.blank,
			Correct:       entry.correct,
			AccuracyRate:  rate,
			Difficulty:    round2(100 - rate),
		})
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		if metrics[i].AccuracyRate != metrics[j].AccuracyRate {
			return metrics[i].AccuracyRate < metrics[j].AccuracyRate
		}
		return metrics[i].Label < metrics[j].Label
	})
	return metrics
}

// FilterQuestionMetrics keeps metrics whose label contains the search term,
// case-insensitively.
func FilterQuestionMetrics(metrics []domain.QuestionMetric, search string) []domain.QuestionMetric {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return metrics
	}
	kept := make([]domain.QuestionMetric, 0, len(metrics))
	for _, metric := range metrics {
		if strings.Contains(strings.ToLower(metric.Label), needle) {
			kept = append(kept, metric)
		}
	}
	return kept
}

// SummarizeQuestionMetrics reduces the accuracy rates of answered questions
// to their mean, median and population standard deviation.
func SummarizeQuestionMetrics(metrics []domain.QuestionMetric) domain.QuestionOverview {
	var rates []float64
	for _, metric := range metrics {
		if metric.Answered > 0 {
			rates = append(rates, metric.AccuracyRate)
		}
	}

	overview := domain.QuestionOverview{Total: len(metrics)}
	if len(rates) == 0 {
		return overview
	}
	overview.Mean = round2(mean(rates))
	overview.Median = round2(median(rates))
	overview.StdDev = stdDevIfMeaningful(rates)
	return overview
}

// BestQuestions returns the n highest-accuracy metrics, best first.
func BestQuestions(metrics []domain.QuestionMetric, n int) []domain.QuestionMetric {
	sorted := make([]domain.QuestionMetric, len(metrics))
	copy(sorted, metrics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AccuracyRate > sorted[j].AccuracyRate
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// WorstQuestions returns the n lowest-accuracy metrics, worst first.
func WorstQuestions(metrics []domain.QuestionMetric, n int) []domain.QuestionMetric {
	sorted := make([]domain.QuestionMetric, len(metrics))
	copy(sorted, metrics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AccuracyRate < sorted[j].AccuracyRate
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// QuestionChartSeries renders metrics as chart-ready parallel arrays in
// their given order.
func QuestionChartSeries(metrics []domain.QuestionMetric) domain.QuestionChart {
	chart := domain.QuestionChart{
		Labels:  make([]string, 0, len(metrics)),
		Values:  make([]float64, 0, len(metrics)),
		Weights: make([]float64, 0, len(metrics)),
	}
	for _, metric := range metrics {
		chart.Labels = append(chart.Labels, metric.Label)
		chart.Values = append(chart.Values, metric.AccuracyRate)
		chart.Weights = append(chart.Weights, metric.Weight)
	}
	return chart
}
