package main

import "github.com/salespulse/salespulse/internal/cmd"

func main() {
	cmd.Execute()
}
