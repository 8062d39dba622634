package main

import "concepdag/cmd/concepdag-cli/cmd"

func main() {
	cmd.Execute()
}
