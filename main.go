package main

import "minic/cmd"

func main() {
	cmd.Main()
}
