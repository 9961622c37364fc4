package main

import "imagediffer/cmd"

func main() {
	cmd.Execute()
}
