package scriptgen

import (
	"fmt"
	"os"
	"strings"
)

const scriptFilePermission = 0600

// WriteScript writes the script lines to path, one command per line.
func WriteScript(path string, lines []string) error {
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), scriptFilePermission); err != nil {
		return fmt.Errorf("write script %s: %w", path, err)
	}
	return nil
}
