package main

import "github.com/amterp/sprintboard/internal/cli"

func main() {
	cli.Run()
}
