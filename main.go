package main

import "github.com/banachtech/volsurf/cmd"

func main() {
	cmd.Execute()
}
