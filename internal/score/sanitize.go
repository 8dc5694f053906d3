package score

import "regexp"

// Student IDs keep Chinese characters, latin letters, digits, underscore and
// hyphen; everything else is stripped.
var studentIDPattern = regexp.MustCompile(`[^\p{Han}a-zA-Z0-9_-]`)

// SanitizeStudentID strips disallowed characters from a raw student ID.
func SanitizeStudentID(raw string) string {
	return studentIDPattern.ReplaceAllString(raw, "")
}
