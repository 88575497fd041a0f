package main

import "github.com/ppartarr/songfiler/cmd"

func main() {
	cmd.Execute()
}
