package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"dreamhouse/internal/materialize"
)

const (
	pollInterval = 2 * time.Second
	maxAttempts  = 45
)

// Command-line client for the generation pipeline: submits a prompt, then
// polls check-status until the job turns terminal or the attempt ceiling is
// reached. Giving up here does not cancel the server-side job.
func main() {
	var (
		baseURL string
		prompt  string
		outPath string
	)
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "API base URL")
	flag.StringVar(&prompt, "prompt", "", "dream house description")
	flag.StringVar(&outPath, "o", "", "write the generated image to this file")
	flag.Parse()

	_ = godotenv.Load()

	prompt = strings.TrimSpace(prompt)
	if prompt == "" && flag.NArg() > 0 {
		prompt = strings.Join(flag.Args(), " ")
	}
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "a prompt is required: dreamhouse -prompt \"A glass cabin in the forest\"")
		os.Exit(1)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	baseURL = strings.TrimRight(baseURL, "/")

	jobID, err := submit(client, baseURL, prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "submit failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("job %s started\n", jobID)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		time.Sleep(pollInterval)

		status, imageData, errMsg, err := checkStatus(client, baseURL, jobID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "poll failed: %v\n", err)
			os.Exit(1)
		}

		switch status {
		case "completed":
			fmt.Println("completed")
			if outPath != "" {
				if err := writeImage(outPath, imageData); err != nil {
					fmt.Fprintf(os.Stderr, "write image: %v\n", err)
					os.Exit(1)
				}
				fmt.Printf("image written to %s\n", outPath)
			}
			return
		case "failed":
			fmt.Fprintf(os.Stderr, "generation failed: %s\n", errMsg)
			os.Exit(1)
		default:
			fmt.Printf("attempt %d/%d: %s\n", attempt, maxAttempts, status)
		}
	}

	fmt.Println("This is taking longer than expected - the job keeps running; check back later")
}

func submit(client *http.Client, baseURL, prompt string) (string, error) {
	body, _ := json.Marshal(map[string]string{"prompt": prompt})
	resp, err := client.Post(baseURL+"/start-generation", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		Success bool   `json:"success"`
		JobID   string `json:"jobId"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK || !out.Success {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, out.Message)
	}
	return out.JobID, nil
}

func checkStatus(client *http.Client, baseURL, jobID string) (status, imageData, errMsg string, err error) {
	resp, err := client.Get(baseURL + "/check-status/" + jobID)
	if err != nil {
		return "", "", "", err
	}
	defer resp.Body.Close()

	var out struct {
		Success   bool   `json:"success"`
		Status    string `json:"status"`
		ImageData string `json:"imageData"`
		Error     string `json:"error"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", "", fmt.Errorf("http %d: %s", resp.StatusCode, out.Message)
	}
	return out.Status, out.ImageData, out.Error, nil
}

func writeImage(path, dataURI string) error {
	_, data, err := materialize.DecodeDataURI(dataURI)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
