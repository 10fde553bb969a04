package main

import "github.com/routelab/routelab/cmd"

func main() {
	cmd.Execute()
}
