package main

import "github.com/linkpulse/linkpulse/cmd"

func main() {
	cmd.Execute()
}
