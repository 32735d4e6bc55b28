package main

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"alexandria/library"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "alexandria",
		Short:         "Catalog manager for the Great Library of Alexandria",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runShell()
		},
	}
	root.AddCommand(newArchiveCmd())
	return root
}

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <file.db>",
		Short: "Export the catalog into a SQLite archive for ad-hoc SQL queries",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := library.NewConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg.LogLevel)
			defer log.Sync()

			catalog := library.NewCatalog(log)
			if err := catalog.LoadFile(cfg.DataFile); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("no data file at %s, nothing to archive", cfg.DataFile)
				}
				return err
			}
			if err := catalog.ExportArchive(args[0]); err != nil {
				return err
			}
			fmt.Printf("Archive written to %s\n", args[0])
			return nil
		},
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func runShell() error {
	cfg, err := library.NewConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)
	defer log.Sync()

	catalog := library.NewCatalog(log)
	catalog.SetBorrowLimit(cfg.BorrowLimit)

	if err := catalog.LoadFile(cfg.DataFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Printf("No data file found at %s\n", cfg.DataFile)
		} else {
			fmt.Printf("Error loading data: %v\n", err)
		}
	} else {
		fmt.Println("Ancient books and scrolls have been recovered from the archives...")
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if interactive {
			displayMenu()
		}
		choice, ok := prompt(scanner, "Select an option: ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			handleAddBook(scanner, catalog)
		case "2":
			handleRegisterUser(scanner, catalog)
		case "3":
			handleSearch(scanner, catalog, interactive)
		case "4":
			handleBorrow(scanner, catalog, cfg.LoanDays)
		case "5":
			handleReturn(scanner, catalog)
		case "6":
			handleListUsers(catalog)
		case "7":
			handleListTransactions(catalog)
		case "8":
			handleSave(catalog, cfg.DataFile)
		case "9":
			handleLoad(catalog, cfg.DataFile)
		case "0":
			if answer, ok := prompt(scanner, "Do you want to save data before exiting? (y/n): "); ok && strings.EqualFold(answer, "y") {
				handleSave(catalog, cfg.DataFile)
			}
			if interactive {
				displayFarewell()
			}
			return nil
		default:
			fmt.Println("Invalid option. Please try again.")
		}
	}
}

func displayMenu() {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("Welcome to the Great Library of Alexandria")
	fmt.Println("Where the wisdom of the ages is preserved")
	fmt.Println("against the ravages of time and ignorance.")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("1. Add Book")
	fmt.Println("2. Register new User")
	fmt.Println("3. Search Books")
	fmt.Println("4. Borrow Book")
	fmt.Println("5. Return Book")
	fmt.Println("6. View all Users")
	fmt.Println("7. View Records of Transactions")
	fmt.Println("8. Save Data")
	fmt.Println("9. Load Data")
	fmt.Println("0. Exit")
	fmt.Println(strings.Repeat("=", 50))
}

func displayFarewell() {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("You depart the Great Library of Alexandria, but its wisdom travels with you.")
	fmt.Println("Remember: No flame can burn what lives in the mind.")
	fmt.Println("Farewell, keeper of Infinite Worlds")
	fmt.Println(strings.Repeat("=", 50))
}

// prompt prints the label and reads one trimmed line. ok is false once stdin
// is exhausted.
func prompt(sc *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func promptInt(sc *bufio.Scanner, label string) (int, bool) {
	raw, ok := prompt(sc, label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("Invalid number: %s\n", raw)
		return 0, false
	}
	return n, true
}

var addedMessages = []string{
	"enshrined in our eternal library",
	"added to our sacred collection",
	"now graces our halls",
}

func handleAddBook(sc *bufio.Scanner, catalog *library.Catalog) {
	title, ok := prompt(sc, "Enter book title: ")
	if !ok {
		return
	}
	author, ok := prompt(sc, "Enter book author: ")
	if !ok {
		return
	}
	isbn, ok := prompt(sc, "Enter book ISBN: ")
	if !ok {
		return
	}

	var publisher *string
	if raw, ok := prompt(sc, "Enter publisher house (optional): "); ok && raw != "" {
		publisher = &raw
	}

	var year *int
	if raw, ok := prompt(sc, "Enter publication year (optional): "); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Printf("Invalid year: %s\n", raw)
			return
		}
		year = &n
	}

	quantity := 1
	if raw, ok := prompt(sc, "Enter quantity of copies: "); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fmt.Printf("Invalid quantity: %s\n", raw)
			return
		}
		quantity = n
	}

	book := catalog.AddBook(title, author, isbn, publisher, quantity, year)
	fmt.Printf("'%s' %s.\n", book.Title, addedMessages[rand.Intn(len(addedMessages))])
	fmt.Println(book)
}

func handleRegisterUser(sc *bufio.Scanner, catalog *library.Catalog) {
	name, ok := prompt(sc, "Enter user name: ")
	if !ok {
		return
	}
	email, ok := prompt(sc, "Enter user email: ")
	if !ok {
		return
	}
	membership, ok := prompt(sc, "Enter membership type (standard/premium): ")
	if !ok {
		return
	}

	user := catalog.RegisterUser(name, email, membership)
	fmt.Printf("User registered successfully: %s\n", user)
}

func handleSearch(sc *bufio.Scanner, catalog *library.Catalog, interactive bool) {
	if interactive {
		fmt.Println("\nSearch Books")
		fmt.Println("1. By Title")
		fmt.Println("2. By Author")
		fmt.Println("3. By ISBN")
		fmt.Println("4. By Publisher House")
		fmt.Println("5. By Year")
		fmt.Println("6. By ID")
		fmt.Println("7. By Available Copies")
		fmt.Println("8. Back to Main Menu")
	}
	choice, ok := prompt(sc, "Select an option: ")
	if !ok || choice == "8" {
		return
	}

	var criteria library.SearchCriteria
	switch choice {
	case "1":
		term, ok := prompt(sc, "Enter title to search: ")
		if !ok {
			return
		}
		criteria.Title = &term
	case "2":
		term, ok := prompt(sc, "Enter author to search: ")
		if !ok {
			return
		}
		criteria.Author = &term
	case "3":
		term, ok := prompt(sc, "Enter ISBN to search: ")
		if !ok {
			return
		}
		criteria.ISBN = &term
	case "4":
		term, ok := prompt(sc, "Enter publisher house to search: ")
		if !ok {
			return
		}
		criteria.Publisher = &term
	case "5":
		year, ok := promptInt(sc, "Enter year to search: ")
		if !ok {
			return
		}
		criteria.Year = &year
	case "6":
		id, ok := promptInt(sc, "Enter ID to search: ")
		if !ok {
			return
		}
		criteria.ID = &id
	case "7":
		minAvailable, ok := promptInt(sc, "Enter minimum available copies: ")
		if !ok {
			return
		}
		criteria.MinAvailable = &minAvailable
	default:
		fmt.Println("Invalid option.")
		return
	}

	books := catalog.FindBooks(criteria)
	if len(books) == 0 {
		fmt.Println("No books found matching the criteria.")
		return
	}
	fmt.Printf("\nFound %d book(s):\n", len(books))
	for _, book := range books {
		fmt.Println(book)
	}
}

var borrowPhrases = []string{
	"Guard this knowledge as the ancients guarded the flame.",
	"Protect this wisdom from the destructive fire.",
	"This scroll contains truths that no flame can erase.",
}

func handleBorrow(sc *bufio.Scanner, catalog *library.Catalog, loanDays int) {
	userID, ok := promptInt(sc, "User ID: ")
	if !ok {
		return
	}
	bookID, ok := promptInt(sc, "Book ID: ")
	if !ok {
		return
	}

	loan, err := catalog.BorrowBook(userID, bookID, loanDays)
	if err != nil {
		fmt.Println(friendlyError(err))
		return
	}
	fmt.Printf("Borrowed successfully. Due date: %s\n", loan.DueDate)
	fmt.Println(borrowPhrases[rand.Intn(len(borrowPhrases))])
}

func handleReturn(sc *bufio.Scanner, catalog *library.Catalog) {
	userID, ok := promptInt(sc, "User ID: ")
	if !ok {
		return
	}
	bookID, ok := promptInt(sc, "Book ID: ")
	if !ok {
		return
	}

	if _, err := catalog.ReturnBook(userID, bookID); err != nil {
		fmt.Println(friendlyError(err))
		return
	}
	fmt.Println("The Book/Scroll returns safely to our protection.")
	fmt.Println("The knowledge within has survived another journey.")
}

func handleListUsers(catalog *library.Catalog) {
	users := catalog.Users()
	if len(users) == 0 {
		fmt.Println("No users registered.")
		return
	}
	fmt.Println("\nRegistered Users:")
	for _, user := range users {
		fmt.Println(user)
	}
}

func handleListTransactions(catalog *library.Catalog) {
	transactions := catalog.Transactions()
	if len(transactions) == 0 {
		fmt.Println("No transactions recorded.")
		return
	}
	fmt.Println("\nTransaction Records:")
	for _, trans := range transactions {
		fmt.Printf("%s - %s: %s\n", trans.Timestamp, trans.Action, trans.Details)
	}
}

func handleSave(catalog *library.Catalog, path string) {
	if err := catalog.SaveFile(path); err != nil {
		fmt.Printf("Error saving data: %v\n", err)
		return
	}
	fmt.Printf("Data saved to %s\n", path)
}

func handleLoad(catalog *library.Catalog, path string) {
	if err := catalog.LoadFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("No saved data found.")
		} else {
			fmt.Printf("Error loading data: %v\n", err)
		}
		return
	}
	fmt.Printf("Loaded: %d books, %d users from the archives.\n", len(catalog.Books()), len(catalog.Users()))
}

// friendlyError maps store errors to the messages the menu prints. Unknown
// errors pass through as-is.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, library.ErrUserNotFound):
		return "User not found."
	case errors.Is(err, library.ErrBookNotFound):
		return "Book not found."
	case errors.Is(err, library.ErrNoCopiesAvailable):
		return "No copies available."
	case errors.Is(err, library.ErrBorrowLimitExceeded):
		return "User has reached the maximum number of borrowed books."
	case errors.Is(err, library.ErrLoanNotFound):
		return "This book was not borrowed by the user."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
