package api

import "strings"

// Paths reached without credentials. Matching is by suffix of the URL path
// so the rule holds whatever prefix the base URL carries.
const (
	PathRegister = "/register/"
	PathLogin    = "/auth/login/"
	PathRefresh  = "/auth/refresh/"
)

var publicRoutes = []string{PathRegister, PathLogin, PathRefresh}

// IsPublic reports whether path is exempt from credential attachment.
func IsPublic(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, r := range publicRoutes {
		if strings.HasSuffix(path, r) {
			return true
		}
	}
	return false
}
