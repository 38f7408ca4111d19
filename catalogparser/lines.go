package catalogparser

import "strings"

// skipStats counts lines dropped per category during one file parse, so a
// single summary line can be logged instead of one warning per line.
type skipStats struct {
	lineCount    int
	emptyLines   int
	commentLines int
	badFields    int
}

func (s *skipStats) any() bool {
	return s.emptyLines > 0 || s.commentLines > 0 || s.badFields > 0
}

// classifyLine splits a raw line into tab fields, updating stats for lines
// that carry no record. ok is false for blank and comment lines and for the
// degenerate single-empty-field split the exports sometimes contain.
func classifyLine(line string, stats *skipStats) ([]string, bool) {
	stats.lineCount++

	if len(line) == 0 || strings.TrimSpace(line) == "" {
		stats.emptyLines++
		return nil, false
	}
	if line[0] == '#' {
		stats.commentLines++
		return nil, false
	}

	fields := strings.Split(line, "\t")
	if len(fields) == 1 && fields[0] == "" {
		stats.emptyLines++
		return nil, false
	}
	return fields, true
}
