package library

import "fmt"

// Book represents one title in the catalog. Quantity is the number of copies
// the library owns; Available tracks how many are currently on the shelf.
type Book struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	ISBN           string  `json:"isbn"`
	PublisherHouse *string `json:"publisher_house"`
	Year           *int    `json:"year"`
	Quantity       int     `json:"quantity"`
	Available      int     `json:"available"`
}

func (b *Book) String() string {
	publisher := ""
	if b.PublisherHouse != nil {
		publisher = *b.PublisherHouse
	}
	year := ""
	if b.Year != nil {
		year = fmt.Sprintf("%d", *b.Year)
	}
	return fmt.Sprintf("ID: %d | Title: %s | Author: %s | ISBN: %s | Publisher House: %s | Year: %s | Available: %d/%d",
		b.ID, b.Title, b.Author, b.ISBN, publisher, year, b.Available, b.Quantity)
}

// User represents a registered library user. BorrowedBooks holds every loan
// the user has ever taken, in borrow order, including returned ones.
type User struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	MembershipType string `json:"membership_type"`
	BorrowedBooks  []Loan `json:"borrowed_books"`
}

func (u *User) String() string {
	return fmt.Sprintf("ID: %d | Name: %s | Email: %s | Type: %s | Borrowed Books: %d",
		u.ID, u.Name, u.Email, u.MembershipType, len(u.BorrowedBooks))
}

// Loan records a single borrow event. Dates are calendar days in "2006-01-02"
// form, exactly as they appear in the persisted data file.
type Loan struct {
	UserID     int    `json:"user_id"`
	BookID     int    `json:"book_id"`
	BorrowDate string `json:"borrow_date"`
	DueDate    string `json:"due_date"`
	Returned   bool   `json:"returned"`
}

// Transaction is an immutable audit log entry. Action holds the display label
// assigned when the entry was appended, not the raw category.
type Transaction struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}

// catalogDocument is the persisted representation of a Catalog.
type catalogDocument struct {
	Books        []*Book       `json:"books"`
	Users        []*User       `json:"users"`
	Transactions []Transaction `json:"transactions"`
	NextBookID   int           `json:"next_book_id"`
	NextUserID   int           `json:"next_user_id"`
}
