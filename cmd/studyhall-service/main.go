package main

import (
	"os"

	"github.com/studyhall/studyhall-server/studyhallservice"
)

func main() {
	if err := studyhallservice.Run(); err != nil {
		os.Exit(1)
	}
}
