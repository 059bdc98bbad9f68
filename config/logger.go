package config

import (
	"lojastreet_server/structs"

	"github.com/MonkyMars/gecho"
)

// NewLogger builds the application logger. Callers show the caller location,
// the request logging middleware does not.
func NewLogger(cfg *structs.Config, showCaller bool) *gecho.Logger {
	level := gecho.ParseLogLevel(cfg.Server.LogLevel)
	return gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(showCaller), gecho.WithLogLevel(level)))
}
