package main

import (
	"fmt"
	"os"

	"github.com/thoughtfolio/backend/folioservice"
)

func main() {
	if err := folioservice.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
