package extract

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	placePattern   = regexp.MustCompile(`places/([0-9A-F-]+)`)
	servicePattern = regexp.MustCompile(`services/([0-9]+)`)
	headerPattern  = regexp.MustCompile(`X-Recollect-Place:\s*([0-9A-F-]+):([0-9]+)`)
)

// ReadPasted consumes lines from r until the first blank line and joins them
// into a single string, the way a multi-line curl command pastes.
func ReadPasted(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	// pasted curl commands can carry long cookie headers
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}

		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading pasted input %w", err)
	}

	return strings.Join(lines, " "), nil
}

// IDs extracts the place and service ids from a pasted request description.
// The X-Recollect-Place header is the fallback for whichever id the URL
// patterns did not match.
func IDs(text string) (placeID, serviceID string, ok bool) {
	if m := placePattern.FindStringSubmatch(text); m != nil {
		placeID = m[1]
	}

	if m := servicePattern.FindStringSubmatch(text); m != nil {
		serviceID = m[1]
	}

	if m := headerPattern.FindStringSubmatch(text); m != nil {
		if placeID == "" {
			placeID = m[1]
		}

		if serviceID == "" {
			serviceID = m[2]
		}
	}

	return placeID, serviceID, placeID != "" && serviceID != ""
}
