package main

import (
	"os"

	"mysite/service"
)

// exit is swapped out by tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain runs the command line from os.Args and exits with its status.
func RealMain() {
	exit(service.Execute(os.Args[1:]))
}
