package main

import "github.com/theirongolddev/bcalc/cmd"

func main() {
	cmd.Execute()
}
