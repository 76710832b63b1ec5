package classifier

import (
	"database/sql"
)

const (
	categoriesTable = "categories"
	tokensTable     = "tokens"

	createCategoriesTable = `CREATE TABLE IF NOT EXISTS ` + categoriesTable + ` (
        "id" INTEGER PRIMARY KEY ASC,
        "name" TEXT NOT NULL,
        "document_count" INTEGER NOT NULL DEFAULT 0,
        UNIQUE("name"))`
	createTokensTable = `CREATE TABLE IF NOT EXISTS ` + tokensTable + ` (
        "id" INTEGER PRIMARY KEY ASC,
        "category_id" INTEGER NOT NULL,
        "token" TEXT NOT NULL,
        "count" INTEGER NOT NULL DEFAULT 0,
        FOREIGN KEY("category_id") REFERENCES ` + categoriesTable + `("id"),
        UNIQUE("category_id", "token"))`

	categoriesQuery               = `SELECT "id", "name", "document_count" FROM ` + categoriesTable
	categoryIDQuery               = `SELECT "id" FROM ` + categoriesTable + ` WHERE "name" = ?`
	insertCategoryQuery           = `INSERT OR IGNORE INTO ` + categoriesTable + ` ("name", "document_count") VALUES (?, 0)`
	updateDocCountQuery           = `UPDATE ` + categoriesTable + ` SET "document_count" = "document_count" + 1 WHERE "name" = ?`
	updateOrInsertTokenCountQuery = `INSERT OR REPLACE INTO ` + tokensTable + ` ("category_id", "token", "count") VALUES (?, ?, 1 + COALESCE((SELECT "count" FROM ` + tokensTable + ` WHERE "category_id" = ? AND "token" = ?), 0))`
	vocabularyQuery               = `SELECT DISTINCT "token" FROM ` + tokensTable + ` ORDER BY "token"`
	countsQuery                   = `SELECT "token", "count" FROM ` + tokensTable + ` WHERE "category_id" = ?`
)

// CreateSQLTables creates the tables NewSQLStore expects if they don't already exist.
func CreateSQLTables(db *sql.DB) error {
	if _, err := db.Exec(createCategoriesTable); err != nil {
		return err
	}
	_, err := db.Exec(createTokensTable)
	return err
}

type sqlStore struct {
	db                  *sql.DB
	categoriesQuery     *sql.Stmt
	categoryIDQuery     *sql.Stmt
	insertCategoryQuery *sql.Stmt
	vocabularyQuery     *sql.Stmt
	countsQuery         *sql.Stmt
}

// NewSQLStore returns an SQL database backed Store. The tables must already exist (see
// CreateSQLTables). An in-memory SQLite database must be limited to a single connection,
// otherwise every pooled connection sees its own empty database.
func NewSQLStore(db *sql.DB) (Store, error) {
	s := &sqlStore{
		db: db,
	}
	var err error
	for _, p := range []struct {
		stmt  **sql.Stmt
		query string
	}{
		{&s.categoriesQuery, categoriesQuery},
		{&s.categoryIDQuery, categoryIDQuery},
		{&s.insertCategoryQuery, insertCategoryQuery},
		{&s.vocabularyQuery, vocabularyQuery},
		{&s.countsQuery, countsQuery},
	} {
		if *p.stmt, err = db.Prepare(p.query); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *sqlStore) Categories() (map[string]int64, error) {
	rows, err := s.categoriesQuery.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name string
		var documentCount int64
		if err := rows.Scan(&id, &name, &documentCount); err != nil {
			return nil, err
		}
		categories[name] = documentCount
	}
	return categories, rows.Err()
}

func (s *sqlStore) AddCategory(name string) error {
	_, err := s.insertCategoryQuery.Exec(name)
	return err
}

func (s *sqlStore) AddDocument(category string, tokens []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	res, err := tx.Exec(updateDocCountQuery, category)
	if err != nil {
		tx.Rollback()
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		tx.Rollback()
		return err
	} else if n != 1 {
		if err := tx.Rollback(); err != nil {
			return err
		}
		return ErrCategoryDoesNotExist(category)
	}
	var categoryID int64
	if err := tx.Stmt(s.categoryIDQuery).QueryRow(category).Scan(&categoryID); err != nil {
		tx.Rollback()
		return err
	}
	upsert, err := tx.Prepare(updateOrInsertTokenCountQuery)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer upsert.Close()
	for _, t := range tokens {
		if _, err := upsert.Exec(categoryID, t, categoryID, t); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *sqlStore) Vocabulary() ([]string, error) {
	rows, err := s.vocabularyQuery.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	vocab := make([]string, 0)
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		vocab = append(vocab, token)
	}
	return vocab, rows.Err()
}

func (s *sqlStore) Counts(category string) (map[string]int64, error) {
	var categoryID int64
	if err := s.categoryIDQuery.QueryRow(category).Scan(&categoryID); err == sql.ErrNoRows {
		return nil, ErrCategoryDoesNotExist(category)
	} else if err != nil {
		return nil, err
	}
	rows, err := s.countsQuery.Query(categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int64)
	for rows.Next() {
		var token string
		var count int64
		if err := rows.Scan(&token, &count); err != nil {
			return nil, err
		}
		counts[token] = count
	}
	return counts, rows.Err()
}
