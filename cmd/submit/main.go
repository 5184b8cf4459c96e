// Command submit drives the submission wizard from the command line. It
// feeds the same reducer a browser UI would, so the step gates apply before
// anything touches the network.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"abstractportal-backend/form"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	endpoint := flag.String("endpoint", "", "submission endpoint URL (defaults to SUBMIT_URL)")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	email := flag.String("email", "", "email address")
	phone := flag.String("phone", "", "phone number")
	category := flag.String("category", "", "research category")
	track := flag.String("track", "", "conference track")
	address := flag.String("address", "", "postal address")
	filePath := flag.String("file", "", "path to the abstract PDF")
	flag.Parse()

	if *endpoint == "" {
		*endpoint = os.Getenv("SUBMIT_URL")
	}
	if *endpoint == "" {
		*endpoint = "http://localhost:8080/api/submit-abstract"
	}

	state := form.NewState()
	for name, value := range map[string]string{
		"firstName": *firstName,
		"lastName":  *lastName,
		"email":     *email,
		"phone":     *phone,
		"category":  *category,
		"track":     *track,
		"address":   *address,
	} {
		state = form.Reduce(state, form.SetField{Name: name, Value: value})
	}

	if !state.CanAdvance() {
		log.Fatal("Missing required personal fields: -first-name, -last-name, -email, -phone")
	}
	state = form.Reduce(state, form.Next{})

	if *filePath != "" {
		content, err := os.ReadFile(*filePath)
		if err != nil {
			log.Fatalf("Failed to read abstract file: %v", err)
		}
		state = form.Reduce(state, form.AttachFile{File: form.Attachment{
			Filename:    filepath.Base(*filePath),
			ContentType: mime.TypeByExtension(filepath.Ext(*filePath)),
			Size:        int64(len(content)),
			Content:     content,
		}})
	}

	if !state.CanSubmit() {
		log.Fatal("Missing abstract details: -category, -track, -address and a PDF via -file")
	}

	state = form.Reduce(state, form.SubmitStarted{})

	submitter := form.NewSubmitter(*endpoint)
	result, err := submitter.Submit(context.Background(), state.Draft)
	if err != nil {
		log.Fatalf("Submission failed: %v", err)
	}

	fmt.Printf("Submission accepted: %s\n", result.Submission.ID)
}
