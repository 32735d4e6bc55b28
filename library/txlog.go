package library

// Action categories recorded in the transaction log.
const (
	ActionAddBook = "ADD_BOOK"
	ActionAddUser = "ADD_USER"
	ActionBorrow  = "BORROW"
	ActionReturn  = "RETURN"
)

// actionTitles maps the known categories to the display labels written into
// the log. Unknown categories are recorded verbatim.
var actionTitles = map[string]string{
	ActionAddBook: "BOOK/ SCROLL ENTOMBED",
	ActionAddUser: "NEW SCHOLAR REGISTERED",
	ActionBorrow:  "WISDOM LOANED",
	ActionReturn:  "KNOWLEDGE RESTORED",
}

// logTransaction appends an entry stamped with the current time. Entries are
// never mutated or removed afterwards.
func (c *Catalog) logTransaction(action, details string) {
	if title, ok := actionTitles[action]; ok {
		action = title
	}
	c.transactions = append(c.transactions, Transaction{
		Timestamp: c.now().Format(timestampLayout),
		Action:    action,
		Details:   details,
	})
}

// Transactions returns a copy of the log in append order.
func (c *Catalog) Transactions() []Transaction {
	out := make([]Transaction, len(c.transactions))
	copy(out, c.transactions)
	return out
}
