package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/app"
	"github.com/joho/godotenv"
)

func main() {
	var configPath string
	var issueFor string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&issueFor, "issue-token", "", "Print a bearer token for the given user id and exit")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	if issueFor != "" {
		token, err := app.IssueToken(configPath, issueFor)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	application, err := app.New(configPath)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}
