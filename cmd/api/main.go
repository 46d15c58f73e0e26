package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const API_PATH = "/api/bellows"

var (
	serverHealth int32

	debug   bool
	verbose bool
)

func config() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("BELLONG")
	v.AutomaticEnv()
	v.SetDefault("api_addr", ":2222")
	v.SetDefault("max_concurrent", 8)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
	return v
}

func getid(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get("X-Request-Id")); id != "" {
		return id
	}
	const chars = "0123456789abcdef"
	b := make([]byte, 16)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))]
	}
	return string(b)
}

// routes serves h on the api path with and without the trailing slash,
// both behind the same limiter.
func routes(h http.HandlerFunc, max int) *http.ServeMux {
	limited := limiter(h, max)
	mux := http.NewServeMux()
	mux.HandleFunc(API_PATH+"/", limited)
	mux.HandleFunc(API_PATH, limited)
	return mux
}

func main() {
	v := config()
	debug = v.GetBool("debug")
	verbose = v.GetBool("verbose")
	if verbose || debug {
		log.SetLevel(log.DebugLevel)
	}

	mux := routes(bellows, v.GetInt("max_concurrent"))

	srv := &http.Server{
		Addr:         v.GetString("api_addr"),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		atomic.StoreInt32(&serverHealth, 0)
		log.Info("server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("could not gracefully shutdown: %v", err)
		}
		close(done)
	}()

	atomic.StoreInt32(&serverHealth, 1)
	log.WithField("addr", srv.Addr).Info("serving bellows patterns")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-done
}
