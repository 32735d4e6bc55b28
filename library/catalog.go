package library

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultLoanDays is the loan period applied when the caller passes no
	// explicit number of days.
	DefaultLoanDays = 14

	// DefaultBorrowLimit is the maximum number of loan records a user may
	// hold. The limit counts every loan ever recorded for the user, not just
	// open ones.
	DefaultBorrowLimit = 7

	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Catalog owns the books and users of one library together with the
// transaction log and the id counters. Ids are issued sequentially and never
// reused, even across save/load cycles.
//
// A Catalog is not safe for concurrent use; the shell drives it from a single
// interactive loop.
type Catalog struct {
	books        map[int]*Book
	users        map[int]*User
	transactions []Transaction

	nextBookID int
	nextUserID int

	borrowLimit int
	now         func() time.Time
	log         *zap.Logger
}

// NewCatalog returns an empty catalog. A nil logger is replaced with a no-op.
func NewCatalog(log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		books:       make(map[int]*Book),
		users:       make(map[int]*User),
		nextBookID:  1,
		nextUserID:  1,
		borrowLimit: DefaultBorrowLimit,
		now:         time.Now,
		log:         log,
	}
}

// SetBorrowLimit overrides DefaultBorrowLimit. Values below 1 are ignored.
func (c *Catalog) SetBorrowLimit(n int) {
	if n >= 1 {
		c.borrowLimit = n
	}
}

// AddBook creates a book under the next book id and records an ADD_BOOK
// transaction. Duplicate ISBNs are allowed and produce distinct ids. A
// quantity below 1 is coerced to 1.
func (c *Catalog) AddBook(title, author, isbn string, publisher *string, quantity int, year *int) *Book {
	if quantity < 1 {
		quantity = 1
	}
	book := &Book{
		ID:             c.nextBookID,
		Title:          title,
		Author:         author,
		ISBN:           isbn,
		PublisherHouse: publisher,
		Year:           year,
		Quantity:       quantity,
		Available:      quantity,
	}
	c.books[book.ID] = book
	c.nextBookID++
	c.logTransaction(ActionAddBook, fmt.Sprintf("Added book '%s' by %s", title, author))
	c.log.Debug("book added", zap.Int("id", book.ID), zap.String("title", title))
	return book
}

// RegisterUser creates a user under the next user id and records an ADD_USER
// transaction. An empty membership type defaults to "standard".
func (c *Catalog) RegisterUser(name, email, membershipType string) *User {
	if membershipType == "" {
		membershipType = "standard"
	}
	user := &User{
		ID:             c.nextUserID,
		Name:           name,
		Email:          email,
		MembershipType: membershipType,
		BorrowedBooks:  []Loan{},
	}
	c.users[user.ID] = user
	c.nextUserID++
	c.logTransaction(ActionAddUser, fmt.Sprintf("Registered user %s", name))
	c.log.Debug("user registered", zap.Int("id", user.ID), zap.String("name", name))
	return user
}

// BorrowBook checks a copy of the book out to the user for loanDays days
// (DefaultLoanDays when loanDays < 1) and returns the created loan record.
func (c *Catalog) BorrowBook(userID, bookID, loanDays int) (Loan, error) {
	user, ok := c.users[userID]
	if !ok {
		return Loan{}, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}
	book, ok := c.books[bookID]
	if !ok {
		return Loan{}, fmt.Errorf("book %d: %w", bookID, ErrBookNotFound)
	}
	if book.Available <= 0 {
		return Loan{}, fmt.Errorf("book %d: %w", bookID, ErrNoCopiesAvailable)
	}
	if len(user.BorrowedBooks) >= c.borrowLimit {
		return Loan{}, fmt.Errorf("user %d holds %d loans: %w", userID, len(user.BorrowedBooks), ErrBorrowLimitExceeded)
	}
	if loanDays < 1 {
		loanDays = DefaultLoanDays
	}

	book.Available--
	now := c.now()
	loan := Loan{
		UserID:     user.ID,
		BookID:     book.ID,
		BorrowDate: now.Format(dateLayout),
		DueDate:    now.AddDate(0, 0, loanDays).Format(dateLayout),
	}
	user.BorrowedBooks = append(user.BorrowedBooks, loan)
	c.logTransaction(ActionBorrow, fmt.Sprintf("User %d borrowed book %s", user.ID, book.Title))
	c.log.Info("book borrowed",
		zap.Int("user_id", user.ID),
		zap.Int("book_id", book.ID),
		zap.String("due_date", loan.DueDate))
	return loan, nil
}

// ReturnBook closes the user's first open loan for the book and puts the copy
// back on the shelf. It returns the closed loan record.
func (c *Catalog) ReturnBook(userID, bookID int) (Loan, error) {
	user, ok := c.users[userID]
	if !ok {
		return Loan{}, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}
	book, ok := c.books[bookID]
	if !ok {
		return Loan{}, fmt.Errorf("book %d: %w", bookID, ErrBookNotFound)
	}

	for i := range user.BorrowedBooks {
		loan := &user.BorrowedBooks[i]
		if loan.BookID == bookID && !loan.Returned {
			loan.Returned = true
			book.Available++
			c.logTransaction(ActionReturn, fmt.Sprintf("User %d returned book %s", user.ID, book.Title))
			c.log.Info("book returned", zap.Int("user_id", user.ID), zap.Int("book_id", book.ID))
			return *loan, nil
		}
	}
	return Loan{}, fmt.Errorf("user %d, book %d: %w", userID, bookID, ErrLoanNotFound)
}

// Book fetches a single book by id.
func (c *Catalog) Book(id int) (*Book, error) {
	book, ok := c.books[id]
	if !ok {
		return nil, fmt.Errorf("book %d: %w", id, ErrBookNotFound)
	}
	return book, nil
}

// User fetches a single user by id.
func (c *Catalog) User(id int) (*User, error) {
	user, ok := c.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	return user, nil
}

// Books returns all books ordered by id. Ids are issued sequentially, so this
// is also insertion order.
func (c *Catalog) Books() []*Book {
	books := make([]*Book, 0, len(c.books))
	for _, b := range c.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books
}

// Users returns all users ordered by id.
func (c *Catalog) Users() []*User {
	users := make([]*User, 0, len(c.users))
	for _, u := range c.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}
