package queryloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultQueryFilePath is the optional extra search-term file.
const DefaultQueryFilePath = "data/queries.txt"

// LoadQueries reads one search term per line. Blank lines and lines starting
// with "#" are ignored; order and duplicates are preserved.
func LoadQueries(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open query file %s: %w", path, err)
	}
	defer file.Close()

	var queries []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning query file %s: %w", path, err)
	}
	return queries, nil
}
