package main

import "github.com/pfrederiksen/k500-guide/internal/cli"

func main() {
	cli.Execute()
}
