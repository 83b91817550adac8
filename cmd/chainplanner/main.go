package main

import (
	"github.com/andrescamacho/chainplanner/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
