package dbx

// LimitArg converts a page limit into a LIMIT argument. Non-positive limits
// become NULL, which PostgreSQL treats as LIMIT ALL.
func LimitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
