package library

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal serializes the catalog into its persisted JSON document: books,
// users (with their loan sequences), transactions, and both id counters.
func (c *Catalog) Marshal() ([]byte, error) {
	doc := catalogDocument{
		Books:        c.Books(),
		Users:        c.Users(),
		Transactions: c.Transactions(),
		NextBookID:   c.nextBookID,
		NextUserID:   c.nextUserID,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	return data, nil
}

// Unmarshal replaces the catalog's state with the decoded document. Available
// counts, loan sequences and id counters are restored verbatim, not
// recomputed. On any error the receiver is left untouched.
//
// Records missing their required fields (book id/title, user id/name) and
// counters below 1 are rejected as ErrCorruptData rather than passed through.
func (c *Catalog) Unmarshal(data []byte) error {
	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if doc.NextBookID < 1 || doc.NextUserID < 1 {
		return fmt.Errorf("%w: missing id counters", ErrCorruptData)
	}

	books := make(map[int]*Book, len(doc.Books))
	for _, book := range doc.Books {
		if book == nil || book.ID < 1 || book.Title == "" {
			return fmt.Errorf("%w: book record missing id or title", ErrCorruptData)
		}
		books[book.ID] = book
	}

	users := make(map[int]*User, len(doc.Users))
	for _, user := range doc.Users {
		if user == nil || user.ID < 1 || user.Name == "" {
			return fmt.Errorf("%w: user record missing id or name", ErrCorruptData)
		}
		if user.BorrowedBooks == nil {
			user.BorrowedBooks = []Loan{}
		}
		users[user.ID] = user
	}

	c.books = books
	c.users = users
	c.transactions = doc.Transactions
	c.nextBookID = doc.NextBookID
	c.nextUserID = doc.NextUserID
	return nil
}

// SaveFile writes the whole catalog to path in a single write. The in-memory
// state is never touched; a failed save only means durability was not
// achieved.
func (c *Catalog) SaveFile(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.log.Error("save failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("save catalog: %w", err)
	}
	c.log.Info("catalog saved",
		zap.String("path", path),
		zap.Int("books", len(c.books)),
		zap.Int("users", len(c.users)))
	return nil
}

// LoadFile reads the whole file at path and replaces the catalog's state.
// On any failure, including a missing file (check with
// errors.Is(err, os.ErrNotExist)), the previous in-memory state is retained.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if err := c.Unmarshal(data); err != nil {
		c.log.Error("load failed", zap.String("path", path), zap.Error(err))
		return err
	}
	c.log.Info("catalog loaded",
		zap.String("path", path),
		zap.Int("books", len(c.books)),
		zap.Int("users", len(c.users)))
	return nil
}
