package main

import "satchel/cmd/satchel-cli/cmd"

func main() {
	cmd.Execute()
}
