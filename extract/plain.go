package extract

import (
	"fmt"
	"os"
)

func extractPlain(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	text := string(content)
	if text == "" {
		return nil, nil
	}
	return []string{text}, nil
}
