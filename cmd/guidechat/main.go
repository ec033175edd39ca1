package main

import (
	"log"

	"github.com/Dozuki/rag-guide-chat-poc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
