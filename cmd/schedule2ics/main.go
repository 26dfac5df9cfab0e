package main

import "github.com/pfrederiksen/schedule2ics/internal/cli"

var version = "dev"

func main() {
	cli.Version = version
	cli.Execute()
}
