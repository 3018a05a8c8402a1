package ml

import (
	"fmt"
	"sort"
	"strings"
)

// Evaluation holds validation metrics for a classifier over one dataset.
type Evaluation struct {
	Accuracy float64
	MacroF1  float64
	PerClass map[int]ClassStats
	Support  int
}

type ClassStats struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Evaluate computes accuracy, per-class precision/recall/F1 and macro F1
// from predictions against true labels.
func Evaluate(predicted, actual []int) (*Evaluation, error) {
	if len(predicted) != len(actual) {
		return nil, ErrSizeMismatch
	}
	if len(actual) == 0 {
		return nil, ErrEmptyDataset
	}

	classes := map[int]bool{}
	tp := map[int]int{}
	fp := map[int]int{}
	fn := map[int]int{}
	support := map[int]int{}

	correct := 0
	for i := range actual {
		classes[actual[i]] = true
		classes[predicted[i]] = true
		support[actual[i]]++
		if predicted[i] == actual[i] {
			correct++
			tp[actual[i]]++
		} else {
			fp[predicted[i]]++
			fn[actual[i]]++
		}
	}

	eval := &Evaluation{
		Accuracy: float64(correct) / float64(len(actual)),
		PerClass: map[int]ClassStats{},
		Support:  len(actual),
	}

	var f1Sum float64
	for class := range classes {
		stats := ClassStats{Support: support[class]}
		if tp[class]+fp[class] > 0 {
			stats.Precision = float64(tp[class]) / float64(tp[class]+fp[class])
		}
		if tp[class]+fn[class] > 0 {
			stats.Recall = float64(tp[class]) / float64(tp[class]+fn[class])
		}
		if stats.Precision+stats.Recall > 0 {
			stats.F1 = 2 * stats.Precision * stats.Recall / (stats.Precision + stats.Recall)
		}
		eval.PerClass[class] = stats
		f1Sum += stats.F1
	}
	eval.MacroF1 = f1Sum / float64(len(classes))

	return eval, nil
}

// Metrics returns the evaluation as a run-metrics map.
func (e *Evaluation) Metrics() map[string]float64 {
	return map[string]float64{
		"accuracy": e.Accuracy,
		"f1_score": e.MacroF1,
	}
}

// Report renders a classification report in the familiar per-class table
// form. Class indices without a name fall back to their number.
func (e *Evaluation) Report(classNames []string) string {
	classes := make([]int, 0, len(e.PerClass))
	for c := range e.PerClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	var b strings.Builder
	fmt.Fprintf(&b, "%-14s %9s %9s %9s %9s\n", "", "precision", "recall", "f1-score", "support")
	b.WriteString("\n")
	for _, c := range classes {
		name := fmt.Sprintf("%d", c)
		if c >= 0 && c < len(classNames) {
			name = classNames[c]
		}
		s := e.PerClass[c]
		fmt.Fprintf(&b, "%-14s %9.2f %9.2f %9.2f %9d\n", name, s.Precision, s.Recall, s.F1, s.Support)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-14s %9s %9s %9.2f %9d\n", "accuracy", "", "", e.Accuracy, e.Support)
	fmt.Fprintf(&b, "%-14s %9s %9s %9.2f %9d\n", "macro f1", "", "", e.MacroF1, e.Support)
	return b.String()
}
