// Package reporting forwards unexpected server errors to Rollbar.
package reporting

import (
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
)

// Reporter receives errors that reached the 500 path
type Reporter interface {
	Report(err error, extras map[string]interface{})
	Close()
}

// Config holds Rollbar settings
type Config struct {
	Token       string
	Environment string
	CodeVersion string
}

// New returns a Rollbar reporter, or a log-only one when no token is set
func New(cfg Config) Reporter {
	if cfg.Token == "" {
		return logReporter{}
	}

	host, _ := os.Hostname()
	rollbar.SetToken(cfg.Token)
	rollbar.SetEnvironment(cfg.Environment)
	rollbar.SetServerHost(host)
	rollbar.SetCodeVersion(cfg.CodeVersion)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(true)

	return rollbarReporter{}
}

type rollbarReporter struct{}

func (rollbarReporter) Report(err error, extras map[string]interface{}) {
	rollbar.Error(err, extras)
}

// Close flushes queued items
func (rollbarReporter) Close() {
	rollbar.Wait()
}

type logReporter struct{}

func (logReporter) Report(err error, extras map[string]interface{}) {
	log.Printf("[ERROR] %v %v", err, extras)
}

func (logReporter) Close() {}
