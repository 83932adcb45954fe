package main

import "github.com/contour-lang/contour/cmd"

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
