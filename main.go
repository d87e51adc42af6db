package main

import "github.com/fitloom/fitloom-cli/cmd"

func main() {
	cmd.Execute()
}
