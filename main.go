package main

import (
	"os"

	"github.com/iskcon-portal/iskcon-portal/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
