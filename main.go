package main

import "github.com/mkhandekar/personnel-cv/cmd"

func main() {
	cmd.Execute()
}
