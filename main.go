package main

import "github.com/emrgen/journal/cmd"

func main() {
	cmd.Execute()
}
