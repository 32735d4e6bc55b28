package library

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

var testClock = time.Date(2025, time.March, 10, 12, 30, 0, 0, time.UTC)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog(zap.NewNop())
	c.now = func() time.Time { return testClock }
	return c
}

func TestAddBookAssignsSequentialIDs(t *testing.T) {
	c := newTestCatalog(t)

	first := c.AddBook("Dune", "Frank Herbert", "123", nil, 2, nil)
	second := c.AddBook("Dune", "Frank Herbert", "123", nil, 1, nil)

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("want ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
	if first.Available != first.Quantity {
		t.Fatalf("available %d != quantity %d", first.Available, first.Quantity)
	}
}

func TestAddBookCoercesQuantity(t *testing.T) {
	c := newTestCatalog(t)
	book := c.AddBook("Pamphlet", "Anon", "", nil, 0, nil)
	if book.Quantity != 1 || book.Available != 1 {
		t.Fatalf("want quantity and available 1, got %d/%d", book.Quantity, book.Available)
	}
}

func TestRegisterUserDefaults(t *testing.T) {
	c := newTestCatalog(t)
	user := c.RegisterUser("Ada", "a@x.com", "")
	if user.ID != 1 {
		t.Fatalf("want id 1, got %d", user.ID)
	}
	if user.MembershipType != "standard" {
		t.Fatalf("want membership standard, got %q", user.MembershipType)
	}
	if user.BorrowedBooks == nil || len(user.BorrowedBooks) != 0 {
		t.Fatalf("want empty loan list, got %v", user.BorrowedBooks)
	}
}

func TestBorrowAndReturnFlow(t *testing.T) {
	c := newTestCatalog(t)
	book := c.AddBook("Dune", "Frank Herbert", "123", nil, 2, nil)
	user := c.RegisterUser("Ada", "a@x.com", "")

	loan, err := c.BorrowBook(user.ID, book.ID, 14)
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if book.Available != 1 {
		t.Fatalf("want available 1 after borrow, got %d", book.Available)
	}
	if loan.BorrowDate != "2025-03-10" {
		t.Fatalf("want borrow date 2025-03-10, got %s", loan.BorrowDate)
	}
	if loan.DueDate != "2025-03-24" {
		t.Fatalf("want due date 2025-03-24, got %s", loan.DueDate)
	}
	if loan.Returned {
		t.Fatalf("fresh loan should be open")
	}

	closed, err := c.ReturnBook(user.ID, book.ID)
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if !closed.Returned {
		t.Fatalf("returned loan should be closed")
	}
	if book.Available != 2 {
		t.Fatalf("want available restored to 2, got %d", book.Available)
	}
	if len(user.BorrowedBooks) != 1 || !user.BorrowedBooks[0].Returned {
		t.Fatalf("want exactly one closed loan record, got %v", user.BorrowedBooks)
	}
}

func TestBorrowUnknownIDs(t *testing.T) {
	c := newTestCatalog(t)
	book := c.AddBook("Dune", "Frank Herbert", "123", nil, 1, nil)
	user := c.RegisterUser("Ada", "a@x.com", "")

	if _, err := c.BorrowBook(99, book.ID, 14); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
	if _, err := c.BorrowBook(user.ID, 99, 14); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("want ErrBookNotFound, got %v", err)
	}
	if _, err := c.ReturnBook(99, book.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
	if _, err := c.ReturnBook(user.ID, 99); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("want ErrBookNotFound, got %v", err)
	}
}

func TestBorrowNoCopiesAvailable(t *testing.T) {
	c := newTestCatalog(t)
	book := c.AddBook("Dune", "Frank Herbert", "123", nil, 1, nil)
	first := c.RegisterUser("Ada", "a@x.com", "")
	second := c.RegisterUser("Grace", "g@x.com", "")

	if _, err := c.BorrowBook(first.ID, book.ID, 14); err != nil {
		t.Fatalf("borrow: %v", err)
	}
	_, err := c.BorrowBook(second.ID, book.ID, 14)
	if !errors.Is(err, ErrNoCopiesAvailable) {
		t.Fatalf("want ErrNoCopiesAvailable, got %v", err)
	}
	if len(second.BorrowedBooks) != 0 {
		t.Fatalf("failed borrow must not append a loan, got %v", second.BorrowedBooks)
	}
}

// The borrow limit counts every loan record the user holds, returned or not.
func TestBorrowLimitCountsReturnedLoans(t *testing.T) {
	c := newTestCatalog(t)
	book := c.AddBook("Dune", "Frank Herbert", "123", nil, 1, nil)
	user := c.RegisterUser("Ada", "a@x.com", "")

	for i := 0; i < DefaultBorrowLimit; i++ {
		if _, err := c.BorrowBook(user.ID, book.ID, 14); err != nil {
			t.Fatalf("borrow %d: %v", i+1, err)
		}
		if _, err := c.ReturnBook(user.ID, book.ID); err != nil {
			t.Fatalf("return %d: %v", i+1, err)
		}
	}

	_, err := c.BorrowBook(user.ID, book.ID, 14)
	if !errors.Is(err, ErrBorrowLimitExceeded) {
		t.Fatalf("want ErrBorrowLimitExceeded, got %v", err)
	}
	if book.Available != book.Quantity {
		t.Fatalf("failed borrow must not touch availability, got %d", book.Available)
	}
}

func TestReturnWithoutOpenLoan(t *testing.T) {
	c := newTestCatalog(t)
	book := c.AddBook("Dune", "Frank Herbert", "123", nil, 1, nil)
	user := c.RegisterUser("Ada", "a@x.com", "")

	if _, err := c.ReturnBook(user.ID, book.ID); !errors.Is(err, ErrLoanNotFound) {
		t.Fatalf("want ErrLoanNotFound, got %v", err)
	}

	// A loan already closed cannot be returned again.
	if _, err := c.BorrowBook(user.ID, book.ID, 14); err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if _, err := c.ReturnBook(user.ID, book.ID); err != nil {
		t.Fatalf("return: %v", err)
	}
	if _, err := c.ReturnBook(user.ID, book.ID); !errors.Is(err, ErrLoanNotFound) {
		t.Fatalf("want ErrLoanNotFound on double return, got %v", err)
	}
}

func TestSetBorrowLimit(t *testing.T) {
	c := newTestCatalog(t)
	c.SetBorrowLimit(1)
	book := c.AddBook("Dune", "Frank Herbert", "123", nil, 2, nil)
	user := c.RegisterUser("Ada", "a@x.com", "")

	if _, err := c.BorrowBook(user.ID, book.ID, 14); err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if _, err := c.BorrowBook(user.ID, book.ID, 14); !errors.Is(err, ErrBorrowLimitExceeded) {
		t.Fatalf("want ErrBorrowLimitExceeded, got %v", err)
	}

	c.SetBorrowLimit(0) // ignored
	if c.borrowLimit != 1 {
		t.Fatalf("limit below 1 must be ignored, got %d", c.borrowLimit)
	}
}

func TestBorrowDefaultsLoanPeriod(t *testing.T) {
	c := newTestCatalog(t)
	book := c.AddBook("Dune", "Frank Herbert", "123", nil, 1, nil)
	user := c.RegisterUser("Ada", "a@x.com", "")

	loan, err := c.BorrowBook(user.ID, book.ID, 0)
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if loan.DueDate != "2025-03-24" {
		t.Fatalf("want default 14-day due date 2025-03-24, got %s", loan.DueDate)
	}
}
