package main

import "github.com/midnite8177/BasicLisp/cmd"

func main() {
	cmd.Execute()
}
