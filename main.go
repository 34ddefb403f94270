package main

import "github.com/Tiliavir/time-tracker/cmd"

func main() {
	cmd.Execute()
}
