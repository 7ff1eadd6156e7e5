package main

import "github.com/peterfpeterson/finddata/internal/cli"

func main() {
	cli.Execute()
}
