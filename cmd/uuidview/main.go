package main

import "github.com/rebelice/uuidview/internal/cli"

func main() {
	cli.Execute()
}
