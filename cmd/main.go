package main

import (
	"os"

	"bookcatalog/internal/app"

	"github.com/sirupsen/logrus"

	// scheduler time zone works on hosts without zoneinfo
	_ "time/tzdata"
)

// @title Book Catalog API
// @version 1.0
// @description Bookstore catalog priced in UAH with EUR derived from the NBU rate.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped with error")
		os.Exit(1)
	}
}
