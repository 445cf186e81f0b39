package main

import "github.com/pypeek/pypeek/internal/cli"

func main() {
	cli.Execute()
}
