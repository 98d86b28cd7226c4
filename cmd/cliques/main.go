package main

import (
	"log"

	"github.com/kestfor/FiveWordCliques/cmd/cliques/app"
)

func main() {
	err := app.New().Execute()
	if err != nil {
		log.Fatal(err)
	}
}
