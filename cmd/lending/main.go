package main

import (
	"errors"
	stdLog "log"
	"os"

	"github.com/joho/godotenv"
)

//go:generate swag init --dir ../../ --generalInfo cmd/lending/main.go --output ../../lending/swagger --outputTypes go --parseInternal --parseDependency

// @title Lending service API
// @version 1.0
// @description Library inventory, loans and borrow requests.
// @description Identity comes from the X-User-Id and X-User-Role headers set by the gateway.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
