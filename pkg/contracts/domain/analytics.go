package domain

// StudentFilter is the conjunction of optional predicates applied to a
// student list: exact class, exact file, case-insensitive name substring,
// inclusive score bounds. Nil bounds are not applied.
type StudentFilter struct {
	Class    string   `json:"class"`
	File     string   `json:"file"`
	Name     string   `json:"name"`
	ScoreMin *float64 `json:"score_min"`
	ScoreMax *float64 `json:"score_max"`
}

// Sortable student fields.
const (
	SortByClass          = "class"
	SortByName           = "name"
	SortByScore          = "score"
	SortByScorePercent   = "score_percent"
	SortByCorrect        = "correct"
	SortByCorrectPercent = "correct_percent"
	SortByFile           = "file"
	SortByStatus         = "status"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ClassSummary aggregates one class.
type ClassSummary struct {
	Name  string        `json:"name"`
	Total int           `json:"total"`
	Mean  float64       `json:"mean"`
	Best  StudentResult `json:"best"`
	Worst StudentResult `json:"worst"`
}

// QuestionAccuracy is the per-question accuracy derived from a (possibly
// filtered) student list, used to rank hardest and easiest questions.
type QuestionAccuracy struct {
	Label        string  `json:"label"`
	Key          string  `json:"key"`
	Answered     int     `json:"answered"`
	Correct      int     `json:"correct"`
	AccuracyRate float64 `json:"accuracy_rate"`
}

// Insights is the summary block computed over a filtered student list.
type Insights struct {
	Total     int                `json:"total"`
	Mean      float64            `json:"mean"`
	Median    float64            `json:"median"`
	StdDev    float64            `json:"std_dev"`
	Best      *StudentResult     `json:"best"`
	Worst     *StudentResult     `json:"worst"`
	Classes   []ClassSummary     `json:"classes"`
	Top       []StudentResult    `json:"top"`
	Bottom    []StudentResult    `json:"bottom"`
	Hardest   []QuestionAccuracy `json:"hardest_questions"`
	Easiest   []QuestionAccuracy `json:"easiest_questions"`
}

// QuestionMetric is the full difficulty record for one question, combining
// the global question bank entry with answers from the filtered students.
type QuestionMetric struct {
	Label         string  `json:"label"`
	Key           string  `json:"key"`
	Weight        float64 `json:"weight"`
	Answered      int     `json:"answered"`
	Blank         int     `json:"blank"`
	TotalStudents int     `json:"total_students"`
	Correct       int     `json:"correct"`
	AccuracyRate  float64 `json:"accuracy_rate"`
	Difficulty    float64 `json:"difficulty"`
}

// QuestionOverview summarizes the accuracy-rate distribution across
// questions that received at least one answer.
type QuestionOverview struct {
	Total  int     `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// QuestionChart is the chart-ready series for question metrics.
type QuestionChart struct {
	Labels  []string  `json:"labels"`
	Values  []float64 `json:"values"`
	Weights []float64 `json:"weights"`
}

// StatusCount is one slice of the band distribution.
type StatusCount struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Range      string  `json:"range"`
	Color      string  `json:"color"`
	Bg         string  `json:"bg"`
	Icon       string  `json:"icon"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ClassChart carries per-class mean scores with band colors.
type ClassChart struct {
	Labels []string  `json:"labels"`
	Means  []float64 `json:"means"`
	Colors []string  `json:"colors"`
}

// Series is a generic labels/values pair for line-style charts.
type Series struct {
	Labels []float64 `json:"labels"`
	Values []float64 `json:"values"`
}

// ScatterPoint plots one student: percentage score against percentage of
// correct answers.
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Name  string  `json:"name"`
	Class string  `json:"class"`
}

// Boxplot holds the five-number summary of the score distribution.
type Boxplot struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// VisualData bundles every chart-ready series derived from a student list.
type VisualData struct {
	StatusSummary   []StatusCount   `json:"status_summary"`
	ClassChart      ClassChart      `json:"class_chart"`
	Sparkline       Series          `json:"sparkline"`
	Scatter         []ScatterPoint  `json:"scatter"`
	Boxplot         Boxplot         `json:"boxplot"`
	PercentileCurve Series          `json:"percentile_curve"`
	Top             []StudentResult `json:"top"`
	Bottom          []StudentResult `json:"bottom"`
}
