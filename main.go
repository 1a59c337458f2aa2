package main

import "github.com/mpryce/ttedit/cmd"

func main() {
	cmd.Execute()
}
