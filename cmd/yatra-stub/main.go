package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"yatra/internal/apitest"
	"yatra/internal/domain"
	"yatra/internal/logging"
)

func main() {
	var (
		addr      string
		user      string
		password  string
		secret    string
		accessTTL time.Duration
	)
	log := logging.Stderr(logging.LevelInfo)

	cmd := &cobra.Command{
		Use:   "yatra-stub",
		Short: "In-memory fake of the transit API",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := apitest.New(apitest.Config{Secret: []byte(secret), AccessTTL: accessTTL})
			if user != "" {
				if _, err := srv.AddUser(domain.Username(user), user+"@example.com", password); err != nil {
					return err
				}
				log.Infof("demo account %q ready", user)
			}
			log.Infof("yatra-stub listening on %s", addr)
			return http.ListenAndServe(addr, accessLog(log, srv.Router()))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "listen address")
	cmd.Flags().StringVar(&user, "user", "demo", "demo account username (empty to skip)")
	cmd.Flags().StringVar(&password, "password", "demo-pass-123", "demo account password")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("YATRA_STUB_SECRET"), "JWT signing secret")
	cmd.Flags().DurationVar(&accessTTL, "access-ttl", 5*time.Minute, "access token lifetime")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func accessLog(log *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Infof("%s %s %d %s", r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Microsecond))
	})
}
