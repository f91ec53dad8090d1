package main

import "github.com/harukit/harukit/cmd"

func main() {
	cmd.Execute()
}
