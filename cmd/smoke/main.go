// Command smoke exercises a running graphlens server end to end.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var sample = map[string]any{
	"nodes": []map[string]string{
		{"id": "rain", "label": "Rain"},
		{"id": "flood", "label": "Flood"},
		{"id": "crops", "label": "Crops"},
		{"id": "prices", "label": "Prices"},
	},
	"edges": []map[string]any{
		{"source": "rain", "target": "flood", "type": "+", "weight": 0.9},
		{"source": "flood", "target": "crops", "type": "-", "weight": 0.7},
		{"source": "rain", "target": "crops", "type": "+", "weight": 0.4},
		{"source": "crops", "target": "prices", "type": "-", "weight": 0.6},
	},
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	wait := flag.Duration("wait", 2*time.Second, "time to wait for the server to start")
	flag.Parse()

	time.Sleep(*wait)
	fmt.Println("Starting smoke test...")

	client := &http.Client{Timeout: 30 * time.Second}
	check := func(step, method, endpoint string, payload any) []byte {
		fmt.Printf("%s...\n", step)
		body, ok := sendRequest(client, method, *baseURL+endpoint, payload)
		if !ok {
			fmt.Printf("FAILED: %s\n", step)
			os.Exit(1)
		}
		fmt.Printf("PASSED: %s\n", step)
		return body
	}

	check("Health", http.MethodGet, "/health", nil)

	var list struct {
		Analyses []struct {
			ID string `json:"id"`
		} `json:"analyses"`
	}
	if err := json.Unmarshal(check("List analyses", http.MethodGet, "/analyses", nil), &list); err != nil {
		fmt.Printf("FAILED: decode analyses: %v\n", err)
		os.Exit(1)
	}

	for _, a := range list.Analyses {
		check("Run "+a.ID, http.MethodPost, "/analyses/"+a.ID, sample)
	}
	check("Influence", http.MethodPost, "/influence", sample)
}

func sendRequest(client *http.Client, method, url string, payload any) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}
	return respBody, true
}
