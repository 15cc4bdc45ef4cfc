package main

import "librisk/cmd"

func main() {
	cmd.Execute()
}
