package postgres

// nullable maps an empty string to SQL NULL for optional columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
