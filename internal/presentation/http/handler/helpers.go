package handler

import "fmt"

// parsePositiveInt parses a query parameter that must be >= 1.
func parsePositiveInt(s string) (int, error) {
	var result int
	_, err := fmt.Sscanf(s, "%d", &result)
	if err != nil || result < 1 {
		return 1, err
	}
	return result, nil
}
