package classifier

import "math"

// Class is one of the two labels a Classifier separates.
type Class string

// Labels of the lyric corpora the classifier was first built for.
const (
	Pop     Class = "Pop"
	Country Class = "Country"
)

// Classifier is a two-class naive Bayes classifier. It only accumulates counts; call
// Snapshot once training is done to get a Model that predicts.
//
// A Classifier is not safe for concurrent use.
type Classifier struct {
	store     Store
	tokenizer Tokenizer
	classes   [2]Class
}

// NewClassifier returns a Classifier separating first from second. Both categories are
// created in the store. The first class wins ties.
func NewClassifier(store Store, tokenizer Tokenizer, first, second Class) (*Classifier, error) {
	if first == second {
		return nil, ErrDuplicateClass
	}
	c := &Classifier{
		store:     store,
		tokenizer: tokenizer,
		classes:   [2]Class{first, second},
	}
	for _, class := range c.classes {
		if err := store.AddCategory(string(class)); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Classes returns the two labels in tie-break order.
func (c *Classifier) Classes() [2]Class {
	return c.classes
}

// Train feeds a whole corpus of text belonging to class. Repeated calls accumulate.
func (c *Classifier) Train(class Class, text string) error {
	if class != c.classes[0] && class != c.classes[1] {
		return ErrCategoryDoesNotExist(class)
	}
	return c.store.AddDocument(string(class), c.tokenizer.Tokenize(text))
}

// DocumentCounts returns how many corpora were trained into each class.
func (c *Classifier) DocumentCounts() (map[Class]int64, error) {
	cats, err := c.store.Categories()
	if err != nil {
		return nil, err
	}
	counts := make(map[Class]int64, len(c.classes))
	for _, class := range c.classes {
		counts[class] = cats[string(class)]
	}
	return counts, nil
}

// Snapshot copies the trained counts into a read-only Model. Training after a snapshot
// does not affect the returned Model.
func (c *Classifier) Snapshot() (*Model, error) {
	vocab, err := c.store.Vocabulary()
	if err != nil {
		return nil, err
	}
	m := &Model{
		tokenizer:  c.tokenizer,
		classes:    c.classes,
		vocabulary: len(vocab),
	}
	for i, class := range c.classes {
		if m.counts[i], err = c.store.Counts(string(class)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Model is an immutable trained classifier. It is safe for concurrent use.
type Model struct {
	tokenizer  Tokenizer
	classes    [2]Class
	counts     [2]map[string]int64 // token -> count, per class
	vocabulary int                 // distinct tokens across both classes
}

// Scores holds the outcome of scoring one text. Index i refers to Classes[i].
type Scores struct {
	Classes    [2]Class
	Raw        [2]float64 // product of per-token likelihoods
	Likeliness [2]float64 // Raw normalized to sum to 1
}

// Winner returns the class with the strictly greater likeliness, or the first class on a tie.
func (s Scores) Winner() Class {
	if s.Likeliness[0] < s.Likeliness[1] {
		return s.Classes[1]
	}
	return s.Classes[0]
}

// Of returns the likeliness of class, or 0 if the scores are not about it.
func (s Scores) Of(class Class) float64 {
	for i, c := range s.Classes {
		if c == class {
			return s.Likeliness[i]
		}
	}
	return 0
}

// Predict returns the more likely class for text. Text without any tokens scores
// 0.5/0.5 and goes to the first class.
func (m *Model) Predict(text string) Class {
	return m.Score(text).Winner()
}

// Score tokenizes text and returns the raw and normalized scores of both classes.
func (m *Model) Score(text string) Scores {
	s := Scores{
		Classes: m.classes,
		Raw:     m.scoreOfTokens(m.tokenizer.Tokenize(text)),
	}
	s.Likeliness = normalize(s.Raw)
	return s
}

// Vocabulary returns the number of distinct tokens seen across both classes.
func (m *Model) Vocabulary() int {
	return m.vocabulary
}

// For each class the score is the product over tokens of (count+1) / (T + U), where T is
// the number of distinct tokens seen in that class and U the size of the combined
// vocabulary. T counts distinct tokens rather than occurrences, unlike textbook Laplace
// smoothing.
// TODO: decide whether T should become the total occurrence count of the class.
func (m *Model) scoreOfTokens(tokens []string) [2]float64 {
	scores := [2]float64{1.0, 1.0}
	if m.vocabulary == 0 {
		return scores
	}

	var denom [2]float64
	for i, counts := range m.counts {
		denom[i] = float64(len(counts) + m.vocabulary)
	}

	for _, t := range tokens {
		for i, counts := range m.counts {
			scores[i] *= float64(counts[t]+1) / denom[i]
		}
	}
	return scores
}

// normalize scales raw scores to sum to 1. Scaling by the larger score first keeps the sum
// finite. Scores that overflowed to +Inf share all the mass; two zeros split it evenly.
func normalize(raw [2]float64) [2]float64 {
	hi := math.Max(raw[0], raw[1])
	switch {
	case hi == 0:
		return [2]float64{0.5, 0.5}
	case math.IsInf(hi, 1):
		if raw[0] == raw[1] {
			return [2]float64{0.5, 0.5}
		}
		var l [2]float64
		for i, p := range raw {
			if math.IsInf(p, 1) {
				l[i] = 1
			}
		}
		return l
	}
	a, b := raw[0]/hi, raw[1]/hi
	return [2]float64{a / (a + b), b / (a + b)}
}
