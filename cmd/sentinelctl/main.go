package main

import (
	"github.com/dragonspire/sentinel/internal/cli"
)

func main() {
	cli.Execute()
}
