package main

import "ssh-to-terminal/cmd"

func main() {
	cmd.Execute()
}
