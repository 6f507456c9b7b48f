package main

import "portfolio-contact-api/internal/cli"

func main() {
	cli.Execute()
}
