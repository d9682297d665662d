package main

import "github.com/alexiusacademia/gotruss/cmd"

func main() {
	cmd.Execute()
}
