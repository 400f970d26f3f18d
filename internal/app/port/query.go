package port

// QueryProvider defines the interface for fetching the ordered list of search terms.
type QueryProvider interface {
	GetQueries() ([]string, error)
}
