package service

// SanitizeLimit проверяет limit и подставляет defaultVal, если он вне [1, max].
func SanitizeLimit(limit *int, defaultVal, max int) {
	if *limit <= 0 || *limit > max {
		*limit = defaultVal
	}
}
