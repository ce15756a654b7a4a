package main

import "github.com/moyu-x/dupe-finder/cmd"

func main() {
	cmd.Execute()
}
