package main

import "schedule-reconciler/cmd"

func main() {
	cmd.Execute()
}
