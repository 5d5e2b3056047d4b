package main

import "preset-localizer/internal/cli"

func main() {
	cli.Execute()
}
