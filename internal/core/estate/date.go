package estate

import (
	"regexp"
	"strings"
)

// reDate matches "March 4, 2021" style dates and numeric dates such as
// 03/04/2021, 3-4-21 or 03 | 04 | 2021 (OCR turns slashes into bars).
var reDate = regexp.MustCompile(`(?i)(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|` +
	`Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s+\d{1,2},\s+\d{4}` +
	`|\d{1,2}\s*[/\-|]\s*\d{1,2}\s*[/\-|]\s*\d{2,4}`)

// FindDate returns the first date in s, or "".
func FindDate(s string) string {
	return strings.TrimSpace(reDate.FindString(s))
}
