package main

import "github.com/mcoot/teamsplit/internal/cli"

func main() {
	cli.Execute()
}
