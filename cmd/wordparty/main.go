package main

import (
	"github.com/tlindqvist/wordparty/internal/cli"
)

func main() {
	cli.Execute()
}
