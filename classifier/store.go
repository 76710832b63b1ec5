package classifier

import (
	"errors"
	"sort"
)

var (
	// ErrDuplicateClass is returned when a classifier is asked to separate a class from itself.
	ErrDuplicateClass = errors.New("classifier: both classes have the same label")
)

// ErrCategoryDoesNotExist is the error returned when a category doesn't exist.
type ErrCategoryDoesNotExist string

func (e ErrCategoryDoesNotExist) Error() string {
	return "classifier: category " + string(e) + " does not exist"
}

// Store is the storage interface for a classifier. Counts only ever grow.
type Store interface {
	Categories() (map[string]int64, error) // category -> document count
	AddCategory(name string) error
	AddDocument(category string, tokens []string) error
	Vocabulary() ([]string, error)                   // distinct tokens across all categories
	Counts(category string) (map[string]int64, error) // token -> count
}

type localStore struct {
	categories     []string
	documentCounts map[string]int64            // category -> count
	tokenCounts    map[string]map[string]int64 // category -> token -> count
	vocabulary     map[string]struct{}
}

// NewLocalStore returns a new in-memory store
func NewLocalStore() Store {
	return &localStore{
		categories:     make([]string, 0, 2),
		documentCounts: make(map[string]int64),
		tokenCounts:    make(map[string]map[string]int64),
		vocabulary:     make(map[string]struct{}),
	}
}

func (ls *localStore) AddCategory(name string) error {
	if _, ok := ls.documentCounts[name]; ok {
		return nil
	}
	ls.categories = append(ls.categories, name)
	ls.documentCounts[name] = 0
	ls.tokenCounts[name] = make(map[string]int64)
	return nil
}

func (ls *localStore) AddDocument(category string, tokens []string) error {
	fc, ok := ls.tokenCounts[category]
	if !ok {
		return ErrCategoryDoesNotExist(category)
	}
	ls.documentCounts[category]++
	for _, token := range tokens {
		ls.vocabulary[token] = struct{}{}
		fc[token]++
	}
	return nil
}

func (ls *localStore) Categories() (map[string]int64, error) {
	counts := make(map[string]int64, len(ls.documentCounts))
	for cat, n := range ls.documentCounts {
		counts[cat] = n
	}
	return counts, nil
}

func (ls *localStore) Vocabulary() ([]string, error) {
	vocab := make([]string, 0, len(ls.vocabulary))
	for t := range ls.vocabulary {
		vocab = append(vocab, t)
	}
	sort.Strings(vocab)
	return vocab, nil
}

func (ls *localStore) Counts(category string) (map[string]int64, error) {
	tc, ok := ls.tokenCounts[category]
	if !ok {
		return nil, ErrCategoryDoesNotExist(category)
	}
	counts := make(map[string]int64, len(tc))
	for t, n := range tc {
		counts[t] = n
	}
	return counts, nil
}
