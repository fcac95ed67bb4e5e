package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leitor/pkg/contracts/domain"
)

func TestBuildQuestionMetrics(t *testing.T) {
	bank := map[string]domain.QuestionStats{
		"1": {Label: "1", Key: "A", Weight: 1.5, Answered: 3, Correct: 2},
		"2": {Label: "2", Key: "B", Weight: 2.0, Answered: 3, Correct: 1},
	}
	key := map[string]string{"1": "A", "2": "B"}
	students := []domain.StudentResult{
		{Name: "Ana", AnswerKey: key, Answers: map[string]string{"1": "A", "2": ""}},
		{Name: "Bruno", AnswerKey: key, Answers: map[string]string{"1": "A", "2": "C"}},
		{Name: "Carla", AnswerKey: key, Answers: map[string]string{"1": "B", "2": "B"}},
	}

	metrics := BuildQuestionMetrics(students, bank)
	require.Len(t, metrics, 2)

	// Sorted hardest first: question 2 has 50% accuracy, question 1 has 66.67%.
	q2 := metrics[0]
	assert.Equal(t, "2", q2.Label)
	assert.Equal(t, 2, q2.Answered)
	assert.Equal(t, 1, q2.Blank)
	assert.Equal(t, 3, q2.TotalStudents)
	assert.Equal(t, 1, q2.Correct)
	assert.InDelta(t, 50.0, q2.AccuracyRate, 1e-9)
	assert.InDelta(t, 50.0, q2.Difficulty, 1e-9)
	assert.InDelta(t, 2.0, q2.Weight, 1e-9)

	q1 := metrics[1]
	assert.Equal(t, "1", q1.Label)
	assert.Equal(t, 3, q1.Answered)
	assert.Equal(t, 0, q1.Blank)
	assert.Equal(t, 2, q1.Correct)
	assert.InDelta(t, 66.67, q1.AccuracyRate, 1e-9)
	assert.InDelta(t, 33.33, q1.Difficulty, 1e-9)
}

func TestBuildQuestionMetricsUnansweredQuestion(t *testing.T) {
	bank := map[string]domain.QuestionStats{
		"9": {Label: "9", Key: "E", Weight: 1.0},
	}

	metrics := BuildQuestionMetrics(nil, bank)
	require.Len(t, metrics, 1)
	assert.Zero(t, metrics[0].AccuracyRate)
	assert.InDelta(t, 100.0, metrics[0].Difficulty, 1e-9)
	assert.Zero(t, metrics[0].TotalStudents)
}

func TestFilterQuestionMetrics(t *testing.T) {
	metrics := []domain.QuestionMetric{
		{Label: "Q1"},
		{Label: "Q10"},
		{Label: "2"},
	}

	assert.Len(t, FilterQuestionMetrics(metrics, ""), 3)
	assert.Len(t, FilterQuestionMetrics(metrics, "q1"), 2)
	assert.Len(t, FilterQuestionMetrics(metrics, "Q10"), 1)
	assert.Empty(t, FilterQuestionMetrics(metrics, "zz"))
}

func TestSummarizeQuestionMetrics(t *testing.T) {
	metrics := []domain.QuestionMetric{
		{Label: "1", Answered: 2, AccuracyRate: 40.0},
		{Label: "2", Answered: 2, AccuracyRate: 60.0},
		{Label: "3", Answered: 0, AccuracyRate: 0.0}, // never answered, excluded
	}

	overview := SummarizeQuestionMetrics(metrics)
	assert.Equal(t, 3, overview.Total)
	assert.InDelta(t, 50.0, overview.Mean, 1e-9)
	assert.InDelta(t, 50.0, overview.Median, 1e-9)
	assert.InDelta(t, 10.0, overview.StdDev, 1e-9)

	empty := SummarizeQuestionMetrics(nil)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.Mean)
}

func TestBestWorstQuestions(t *testing.T) {
	metrics := []domain.QuestionMetric{
		{Label: "1", AccuracyRate: 10},
		{Label: "2", AccuracyRate: 90},
		{Label: "3", AccuracyRate: 50},
	}

	best := BestQuestions(metrics, 2)
	require.Len(t, best, 2)
	assert.Equal(t, "2", best[0].Label)
	assert.Equal(t, "3", best[1].Label)

	worst := WorstQuestions(metrics, 2)
	require.Len(t, worst, 2)
	assert.Equal(t, "1", worst[0].Label)
	assert.Equal(t, "3", worst[1].Label)
}

func TestQuestionChartSeries(t *testing.T) {
	metrics := []domain.QuestionMetric{
		{Label: "1", AccuracyRate: 25.0, Weight: 1.0},
		{Label: "2", AccuracyRate: 75.0, Weight: 0.5},
	}

	chart := QuestionChartSeries(metrics)
	assert.Equal(t, []string{"1", "2"}, chart.Labels)
	assert.Equal(t, []float64{25.0, 75.0}, chart.Values)
	assert.Equal(t, []float64{1.0, 0.5}, chart.Weights)
}
