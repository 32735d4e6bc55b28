package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// ExportArchive writes the catalog into a SQLite database at dbPath so the
// data can be queried with plain SQL. The JSON data file remains the source
// of truth: the archive is write-only and fully rebuilt on every export.
func (c *Catalog) ExportArchive(dbPath string) error {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create archive dir: %w", err)
		}
	}
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale archive: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE books (
            id INTEGER PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            isbn TEXT NOT NULL,
            publisher_house TEXT,
            year INTEGER,
            quantity INTEGER NOT NULL,
            available INTEGER NOT NULL
        );`,
		`CREATE TABLE users (
            id INTEGER PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            membership_type TEXT NOT NULL
        );`,
		`CREATE TABLE loans (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL REFERENCES users(id),
            book_id INTEGER NOT NULL REFERENCES books(id),
            borrow_date TEXT NOT NULL,
            due_date TEXT NOT NULL,
            returned BOOLEAN NOT NULL
        );`,
		`CREATE TABLE transactions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp TEXT NOT NULL,
            action TEXT NOT NULL,
            details TEXT NOT NULL
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create archive schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, book := range c.Books() {
		if _, err := tx.Exec(
			`INSERT INTO books(id,title,author,isbn,publisher_house,year,quantity,available) VALUES(?,?,?,?,?,?,?,?)`,
			book.ID, book.Title, book.Author, book.ISBN, book.PublisherHouse, book.Year, book.Quantity, book.Available,
		); err != nil {
			return fmt.Errorf("archive book %d: %w", book.ID, err)
		}
	}
	for _, user := range c.Users() {
		if _, err := tx.Exec(
			`INSERT INTO users(id,name,email,membership_type) VALUES(?,?,?,?)`,
			user.ID, user.Name, user.Email, user.MembershipType,
		); err != nil {
			return fmt.Errorf("archive user %d: %w", user.ID, err)
		}
		for _, loan := range user.BorrowedBooks {
			if _, err := tx.Exec(
				`INSERT INTO loans(user_id,book_id,borrow_date,due_date,returned) VALUES(?,?,?,?,?)`,
				loan.UserID, loan.BookID, loan.BorrowDate, loan.DueDate, loan.Returned,
			); err != nil {
				return fmt.Errorf("archive loan for user %d: %w", user.ID, err)
			}
		}
	}
	for _, trans := range c.Transactions() {
		if _, err := tx.Exec(
			`INSERT INTO transactions(timestamp,action,details) VALUES(?,?,?)`,
			trans.Timestamp, trans.Action, trans.Details,
		); err != nil {
			return fmt.Errorf("archive transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive: %w", err)
	}
	c.log.Info("archive exported",
		zap.String("path", dbPath),
		zap.Int("books", len(c.books)),
		zap.Int("users", len(c.users)),
		zap.Int("transactions", len(c.transactions)))
	return nil
}
