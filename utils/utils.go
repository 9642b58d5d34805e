package utils

import "strings"

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// FetchBearerToken strips the "Bearer " prefix off an Authorization
// header value, assuming the header is properly formatted
func FetchBearerToken(header string) string {
	token := strings.TrimSpace(header)
	if strings.HasPrefix(token, "Bearer ") {
		token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	}
	return token
}
