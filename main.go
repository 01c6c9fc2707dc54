package main

import "github.com/rnwolfe/dated/cmd"

func main() {
	cmd.Execute()
}
