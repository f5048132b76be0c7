package migration

import "strings"

// splitStatements splits a migration script into individual statements on
// semicolons, honoring single-quoted string literals and -- line comments.
// Chunks holding only whitespace or comments are dropped.
func splitStatements(script string) []string {
	var statements []string
	var current strings.Builder
	sawSQL := false
	inString := false
	inComment := false

	flush := func() {
		if sawSQL {
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				statements = append(statements, stmt)
			}
		}
		current.Reset()
		sawSQL = false
	}

	for i := 0; i < len(script); i++ {
		c := script[i]

		if inComment {
			current.WriteByte(c)
			if c == '\n' {
				inComment = false
			}
			continue
		}
		if inString {
			current.WriteByte(c)
			if c == '\'' {
				// A doubled quote re-enters string state on the
				// next iteration, which matches SQL escaping.
				inString = false
			}
			continue
		}

		switch {
		case c == '\'':
			inString = true
			sawSQL = true
			current.WriteByte(c)
		case c == '-' && i+1 < len(script) && script[i+1] == '-':
			inComment = true
			current.WriteByte(c)
		case c == ';':
			flush()
		default:
			if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
				sawSQL = true
			}
			current.WriteByte(c)
		}
	}
	flush()

	return statements
}
