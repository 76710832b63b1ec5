package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/samuel/lyric-classifier/classifier"
	"github.com/samuel/lyric-classifier/config"
	"github.com/samuel/lyric-classifier/corpus"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lyricclass", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath      = fs.String("config", "", "YAML config file (default: built-in Swift corpora under ./src)")
		store           = fs.String("store", "", "Count store: memory or sqlite (overrides config)")
		verbose         = fs.Bool("v", false, "Print the likeliness of both classes before each label")
		skipUnavailable = fs.Bool("skip-unavailable", false, "Skip corpora that cannot be read instead of failing")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lyricclass [options] [text ...]\n\n")
		fmt.Fprintf(stderr, "Trains on the configured corpora and prints one label per text.\n")
		fmt.Fprintf(stderr, "Without text arguments the configured samples are classified.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if *store != "" {
		cfg.Store = *store
	}
	if *skipUnavailable {
		cfg.SkipUnavailable = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	s, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer closeStore()

	first, second := cfg.ClassPair()
	c, err := classifier.NewClassifier(s, classifier.AlphaTokenizer, first, second)
	if err != nil {
		return fmt.Errorf("create classifier: %w", err)
	}

	logger := log.New(stderr, "", log.LstdFlags)
	if _, err := corpus.Train(c, cfg.Sources(), cfg.SkipUnavailable, logger); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	m, err := c.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if *verbose {
		docs, err := c.DocumentCounts()
		if err != nil {
			return fmt.Errorf("document counts: %w", err)
		}
		logger.Printf("trained %d %s and %d %s corpora, %d distinct tokens",
			docs[first], first, docs[second], second, m.Vocabulary())
	}

	texts := fs.Args()
	if len(texts) == 0 {
		texts = cfg.Samples
	}
	for _, text := range texts {
		scores := m.Score(text)
		if *verbose {
			fmt.Fprintf(stdout, "%s: %v || %s: %v\n", second, scores.Of(second), first, scores.Of(first))
		}
		fmt.Fprintln(stdout, scores.Winner())
	}
	return nil
}

// openStore returns the count store for name. The SQLite store lives in an in-memory
// database that is dropped on close.
func openStore(name string) (classifier.Store, func(), error) {
	if name != config.StoreSQLite {
		return classifier.NewLocalStore(), func() {}, nil
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(1)
	if err := classifier.CreateSQLTables(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	s, err := classifier.NewSQLStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return s, func() { db.Close() }, nil
}
