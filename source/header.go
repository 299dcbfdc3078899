package source

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

type HeaderAnalysis struct {
	Headers        []string
	FirstRowIsData bool
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[\sT]\d{2}:\d{2}:\d{2}`),
}

var nonAlnum = regexp.MustCompile("[^a-z0-9]+")

// AnalyzeHeaders decides whether the first CSV row names the columns. When
// at least half of the fields look like names the row is a header and the
// names are normalized; otherwise the row is data and positional names are
// generated.
func AnalyzeHeaders(firstRow []string) *HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}
	result := &HeaderAnalysis{Headers: make([]string, len(firstRow))}

	headerLike := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLike++
		}
	}
	if float64(headerLike)/float64(len(firstRow)) >= 0.5 {
		for i, h := range firstRow {
			result.Headers[i] = NormalizeHeader(h)
			if result.Headers[i] == "" || !isLikelyHeader(h) {
				result.Headers[i] = generateColumnName(i)
			}
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}
	result.Headers = ValidateHeaders(result.Headers)
	return result
}

// NormalizeHeader folds case and drops punctuation, so "Float ID",
// "float_id" and "floatId" all become "floatid".
func NormalizeHeader(h string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "")
}

func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	for _, p := range datePatterns {
		if p.MatchString(text) {
			return false
		}
	}

	letters, total := 0, 0
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
		case unicode.IsLetter(r):
			letters++
			total++
		default:
			total++
		}
	}
	return letters > 0 && float64(letters)/float64(total) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// ValidateHeaders renames repeated headers by appending a counter, so that
// only the first occurrence keeps its name.
func ValidateHeaders(headers []string) []string {
	seen := make(map[string]bool, len(headers))
	result := make([]string, len(headers))
	for i, header := range headers {
		name := header
		for n := 1; seen[name]; n++ {
			name = fmt.Sprintf("%s_%d", header, n)
		}
		seen[name] = true
		result[i] = name
	}
	return result
}
