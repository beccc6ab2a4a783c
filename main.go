package main

import "github.com/iola1999/AssppWeb/internal/cli"

func main() {
	cli.Execute()
}
