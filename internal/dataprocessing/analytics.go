package dataprocessing

import (
	"math"
	"sort"
	"strings"

	"leitor/pkg/contracts/domain"
)

// The aggregation layer: pure functions over an already built dataset.
// Nothing here touches the filesystem or holds state.

type dedupKey struct {
	name  string
	class string
	score float64
	file  string
}

// Deduplicate drops students that repeat (name, class, score, file);
// the first occurrence wins. Applying it twice is a no-op.
func Deduplicate(students []domain.StudentResult) []domain.StudentResult {
	seen := make(map[dedupKey]struct{}, len(students))
	result := make([]domain.StudentResult, 0, len(students))
	for _, student := range students {
		key := dedupKey{
			name:  strings.ToLower(strings.TrimSpace(student.Name)),
			class: student.Class,
			score: round2(student.Score),
			file:  student.File,
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, student)
	}
	return result
}

// ApplyFilter keeps students matching every set predicate: exact class,
// exact file, case-insensitive name substring, inclusive score bounds.
func ApplyFilter(students []domain.StudentResult, filter domain.StudentFilter) []domain.StudentResult {
	nameNeedle := strings.ToLower(filter.Name)
	result := make([]domain.StudentResult, 0, len(students))
	for _, student := range students {
		if filter.Class != "" && student.Class != filter.Class {
			continue
		}
		if filter.File != "" && student.File != filter.File {
			continue
		}
		if nameNeedle != "" && !strings.Contains(strings.ToLower(student.Name), nameNeedle) {
			continue
		}
		if filter.ScoreMin != nil && student.Score < *filter.ScoreMin {
			continue
		}
		if filter.ScoreMax != nil && student.Score > *filter.ScoreMax {
			continue
		}
		result = append(result, student)
	}
	return result
}

// sortKeys maps each sortable field to its comparison key.
var sortKeys = map[string]func(domain.StudentResult) any{
	domain.SortByClass:          func(s domain.StudentResult) any { return strings.ToLower(s.Class) },
	domain.SortByName:           func(s domain.StudentResult) any { return strings.ToLower(s.Name) },
	domain.SortByScore:          func(s domain.StudentResult) any { return s.Score },
	domain.SortByScorePercent:   func(s domain.StudentResult) any { return s.ScorePercent },
	domain.SortByCorrect:        func(s domain.StudentResult) any { return float64(s.Correct) },
	domain.SortByCorrectPercent: func(s domain.StudentResult) any { return s.CorrectPercent },
	domain.SortByFile:           func(s domain.StudentResult) any { return strings.ToLower(s.File) },
	domain.SortByStatus: func(s domain.StudentResult) any {
		if s.Status == nil {
			return ""
		}
		return strings.ToLower(s.Status.Label)
	},
}

// SortStudents stable-sorts a copy of students by the named field. An
// unsupported field falls back to the default field, an unsupported
// direction to the default direction; the effective pair is returned so
// views can render sort headers.
func SortStudents(students []domain.StudentResult, field, direction, defaultField, defaultDirection string) ([]domain.StudentResult, string, string) {
	if _, ok := sortKeys[field]; !ok {
		field = defaultField
	}
	if direction != domain.SortAsc && direction != domain.SortDesc {
		direction = defaultDirection
	}
	key := sortKeys[field]

	sorted := make([]domain.StudentResult, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool {
		less := lessValue(key(sorted[i]), key(sorted[j]))
		if direction == domain.SortDesc {
			return lessValue(key(sorted[j]), key(sorted[i]))
		}
		return less
	})
	return sorted, field, direction
}

func lessValue(a, b any) bool {
	switch av := a.(type) {
	case string:
		return av < b.(string)
	case float64:
		return av < b.(float64)
	default:
		return false
	}
}

// AnnotateStatus returns a copy of students with their score band attached.
func AnnotateStatus(students []domain.StudentResult) []domain.StudentResult {
	annotated := make([]domain.StudentResult, len(students))
	for i, student := range students {
		student.Status = domain.ClassifyScore(student.Score).Info()
		annotated[i] = student
	}
	return annotated
}

// BuildInsights derives the summary block from a filtered student list.
func BuildInsights(students []domain.StudentResult) domain.Insights {
	insights := domain.Insights{
		Classes: []domain.ClassSummary{},
		Top:     []domain.StudentResult{},
		Bottom:  []domain.StudentResult{},
		Hardest: []domain.QuestionAccuracy{},
		Easiest: []domain.QuestionAccuracy{},
	}
	if len(students) == 0 {
		return insights
	}

	scores := make([]float64, len(students))
	for i, student := range students {
		scores[i] = student.Score
	}

	insights.Total = len(students)
	insights.Mean = round2(mean(scores))
	insights.Median = round2(median(scores))
	insights.StdDev = stdDevIfMeaningful(scores)

	best := students[0]
	worst := students[0]
	for _, student := range students[1:] {
		if student.Score > best.Score {
			best = student
		}
		if student.Score < worst.Score {
			worst = student
		}
	}
	insights.Best = &best
	insights.Worst = &worst

	insights.Classes = classSummaries(students)
	insights.Top = topByScore(students, 5, true)
	insights.Bottom = topByScore(students, 5, false)

	accuracy := questionAccuracy(students)
	sort.SliceStable(accuracy, func(i, j int) bool {
		return accuracy[i].AccuracyRate < accuracy[j].AccuracyRate
	})
	insights.Hardest = firstN(accuracy, 5)
	insights.Easiest = lastNReversed(accuracy, 5)
	return insights
}

func classSummaries(students []domain.StudentResult) []domain.ClassSummary {
	byClass := make(map[string][]domain.StudentResult)
	for _, student := range students {
		byClass[student.Class] = append(byClass[student.Class], student)
	}

	names := make([]string, 0, len(byClass))
	for name := range byClass {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]domain.ClassSummary, 0, len(names))
	for _, name := range names {
		members := byClass[name]
		total := 0.0
		best := members[0]
		worst := members[0]
		for _, member := range members {
			total += member.Score
			if member.Score > best.Score {
				best = member
			}
			if member.Score < worst.Score {
				worst = member
			}
		}
		summaries = append(summaries, domain.ClassSummary{
			Name:  name,
			Total: len(members),
			Mean:  round2(total / float64(len(members))),
			Best:  best,
			Worst: worst,
		})
	}
	return summaries
}

// questionAccuracy recomputes per-question accuracy from the students'
// recorded answers and answer keys, so it reflects whatever filter produced
// the list. Blank answers do not enter the denominator.
func questionAccuracy(students []domain.StudentResult) []domain.QuestionAccuracy {
	type counter struct {
		key      string
		answered int
		correct  int
	}
	counters := make(map[string]*counter)
	var order []string

	for _, student := range students {
		for label, key := range student.AnswerKey {
			if key == "" {
				continue
			}
			entry, ok := counters[label]
			if !ok {
				entry = &counter{key: key}
				counters[label] = entry
				order = append(order, label)
			}
			if answer, present := student.Answers[label]; present && answer != "" {
				entry.answered++
				if answer == key {
					entry.correct++
				}
			}
		}
	}
	sort.Strings(order)

	result := make([]domain.QuestionAccuracy, 0, len(order))
	for _, label := range order {
		entry := counters[label]
		rate := 0.0
		if entry.answered > 0 {
			rate = round2(float64(entry.correct) / float64(entry.answered) * 100)
		}
		result = append(result, domain.QuestionAccuracy{
			Label:        label,
			Key:          entry.key,
			Answered:     entry.answered,
			Correct:      entry.correct,
			AccuracyRate: rate,
		})
	}
	return result
}

func topByScore(students []domain.StudentResult, n int, descending bool) []domain.StudentResult {
	sorted := make([]domain.StudentResult, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Score < sorted[j].Score
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func firstN(items []domain.QuestionAccuracy, n int) []domain.QuestionAccuracy {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]domain.QuestionAccuracy, len(items))
	copy(out, items)
	return out
}

func lastNReversed(items []domain.QuestionAccuracy, n int) []domain.QuestionAccuracy {
	start := len(items) - n
	if start < 0 {
		start = 0
	}
	tail := items[start:]
	out := make([]domain.QuestionAccuracy, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}

// Statistics helpers. Empty and single-element inputs yield 0 rather than
// an error; the standard deviation is the population form.

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	total := 0.0
	for _, v := range values {
		total += (v - m) * (v - m)
	}
	return math.Sqrt(total / float64(len(values)))
}

func stdDevIfMeaningful(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return round2(populationStdDev(values))
}

// quartiles computes Q1..Q3 with the exclusive interpolation method over at
// least two sorted values.
func quartiles(sorted []float64) (q1, q2, q3 float64) {
	n := len(sorted)
	at := func(quarter int) float64 {
		h := float64(quarter) * float64(n+1) / 4
		j := int(math.Floor(h))
		if j < 1 {
			return sorted[0]
		}
		if j >= n {
			return sorted[n-1]
		}
		g := h - float64(j)
		return sorted[j-1] + g*(sorted[j]-sorted[j-1])
	}
	return at(1), at(2), at(3)
}
