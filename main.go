package main

import "github.com/they4kman/tilesweep/cmd"

func main() {
	cmd.Execute()
}
