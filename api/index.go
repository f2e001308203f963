// Package handler is the serverless entry point. Warm invocations reuse the
// router and its connection pools.
package handler

import (
	"net/http"
	"resort/config"
	"resort/di"
	"resort/shared/logger"
	"sync"
)

var (
	bootOnce sync.Once
	app      http.Handler
)

func boot() {
	logger.InitLogger()
	logger.SetLogLevel(config.Get())

	app = di.InitializeService()
}

func Handler(w http.ResponseWriter, r *http.Request) {
	bootOnce.Do(boot)

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
