package main

import (
	"errors"
	"fmt"
	"os"

	"alexandria/library"

	jsoniter "github.com/json-iterator/go"
)

// bookSeed mirrors the book fields a curator supplies up front; ids and
// availability are assigned by the catalog.
type bookSeed struct {
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	ISBN           string  `json:"isbn"`
	PublisherHouse *string `json:"publisher_house"`
	Year           *int    `json:"year"`
	Quantity       int     `json:"quantity"`
}

func main() {
	seedFile := "books_seed.json"
	if len(os.Args) > 1 {
		seedFile = os.Args[1]
	}

	cfg, err := library.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading seed file: %v\n", err)
		os.Exit(1)
	}

	var seeds []bookSeed
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &seeds); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing seed file: %v\n", err)
		os.Exit(1)
	}

	catalog := library.NewCatalog(nil)
	if err := catalog.LoadFile(cfg.DataFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error loading existing catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("No existing catalog at %s, starting fresh.\n", cfg.DataFile)
	}

	fmt.Printf("Importing books from %s...\n", seedFile)
	successCount := 0
	skippedCount := 0

	for _, seed := range seeds {
		if seed.Title == "" || seed.Author == "" {
			fmt.Printf("Warning: seed entry missing title or author, skipping\n")
			skippedCount++
			continue
		}
		book := catalog.AddBook(seed.Title, seed.Author, seed.ISBN, seed.PublisherHouse, seed.Quantity, seed.Year)
		fmt.Printf("Imported: %s by %s (ID: %d)\n", book.Title, book.Author, book.ID)
		successCount++
	}

	if err := catalog.SaveFile(cfg.DataFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d books\n", successCount)
	fmt.Printf("Skipped: %d\n", skippedCount)
	fmt.Printf("Catalog saved to %s\n", cfg.DataFile)
}
