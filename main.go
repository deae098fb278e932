package main

import "github.com/lai323/lexis/cmd"

func main() {
	cmd.Execute()
}
