package main

import "github.com/samuelfneumann/flappyq/cli"

func main() {
	cli.Execute()
}
