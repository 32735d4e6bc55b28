package library

import "errors"

// All store errors are recoverable at the call site; the shell matches them
// with errors.Is and keeps the interaction loop running.
var (
	ErrBookNotFound        = errors.New("book not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrNoCopiesAvailable   = errors.New("no copies available")
	ErrBorrowLimitExceeded = errors.New("borrow limit reached")
	ErrLoanNotFound        = errors.New("book is not currently borrowed by this user")
	ErrCorruptData         = errors.New("corrupt catalog data")
)
