package main

import "github.com/headersim/headersim/internal/cli"

func main() {
	cli.Execute()
}
