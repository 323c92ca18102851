package main

import "github.com/mcoot/blockdrop/internal/cli"

func main() {
	cli.Execute()
}
