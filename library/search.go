package library

import "strings"

// SearchCriteria enumerates the optional filters FindBooks applies. Nil
// fields are ignored; every supplied field must match (logical AND), so a
// zero SearchCriteria matches the whole catalog.
type SearchCriteria struct {
	ID           *int    // exact match
	Title        *string // case-insensitive substring
	Author       *string // case-insensitive substring
	ISBN         *string // exact match
	Publisher    *string // case-insensitive substring; absent publisher matches as ""
	Year         *int    // exact match
	MinAvailable *int    // book.Available >= threshold
}

// FindBooks scans the catalog and returns every book matching the criteria,
// ordered by id.
func (c *Catalog) FindBooks(criteria SearchCriteria) []*Book {
	var results []*Book
	for _, book := range c.Books() {
		if criteria.matches(book) {
			results = append(results, book)
		}
	}
	return results
}

func (sc SearchCriteria) matches(b *Book) bool {
	if sc.ID != nil && *sc.ID != b.ID {
		return false
	}
	if sc.Title != nil && !containsFold(b.Title, *sc.Title) {
		return false
	}
	if sc.Author != nil && !containsFold(b.Author, *sc.Author) {
		return false
	}
	if sc.ISBN != nil && *sc.ISBN != b.ISBN {
		return false
	}
	if sc.Publisher != nil {
		publisher := ""
		if b.PublisherHouse != nil {
			publisher = *b.PublisherHouse
		}
		if !containsFold(publisher, *sc.Publisher) {
			return false
		}
	}
	if sc.Year != nil && (b.Year == nil || *sc.Year != *b.Year) {
		return false
	}
	if sc.MinAvailable != nil && b.Available < *sc.MinAvailable {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
