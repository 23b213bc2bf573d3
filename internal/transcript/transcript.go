// Package transcript reads conversation transcripts from disk.
package transcript

import (
	"bufio"
	"fmt"
	"os"
)

// Read returns the trailing maxLines lines of the file at path, in order.
// maxLines <= 0 returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read transcript: %w", err)
		}
		return lines, nil
	}

	// ring holds at most maxLines entries and grows only as lines arrive.
	var ring []string
	idx := 0
	for scanner.Scan() {
		if len(ring) < maxLines {
			ring = append(ring, scanner.Text())
			continue
		}
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	lines := make([]string, len(ring))
	for i := range ring {
		lines[i] = ring[(idx+i)%len(ring)]
	}
	return lines, nil
}
