package main

import "github.com/quizparty/quizparty-go/internal/cli"

func main() {
	cli.Execute()
}
