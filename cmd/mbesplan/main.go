package main

import "github.com/andrescamacho/mbes-planner/internal/adapters/cli"

func main() {
	cli.Execute()
}
