package apitest

import (
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// Start runs a Server behind httptest and returns it with its API root
// (server URL plus /api). The server is closed when the test ends.
func Start(tb testing.TB) (*Server, string) {
	tb.Helper()
	s := New(Config{BcryptCost: bcrypt.MinCost})
	srv := httptest.NewServer(s.Router())
	tb.Cleanup(srv.Close)
	return s, srv.URL + "/api"
}
