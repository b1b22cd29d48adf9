// Command api_probe sends a fixed set of requests against a running instance
// and reports unexpected status codes. It is used as a post-deploy smoke
// check.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Expect   int    `json:"expect"`
	Auth     bool   `json:"auth"`
	Critical bool   `json:"critical"`
}

func main() {
	var (
		baseURL     string
		targetsPath string
		token       string
		timeout     time.Duration
	)

	flag.StringVar(&baseURL, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "api_probe", "targets.json"), "path to JSON targets file")
	flag.StringVar(&token, "token", os.Getenv("PROBE_TOKEN"), "bearer token for authenticated targets")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	failures := 0

	for _, t := range targets {
		status, err := probe(client, baseURL, token, t)
		switch {
		case err != nil:
			fmt.Printf("FAIL %-6s %-40s %v\n", t.Method, t.Path, err)
		case status != t.Expect:
			fmt.Printf("FAIL %-6s %-40s got %d want %d\n", t.Method, t.Path, status, t.Expect)
		default:
			fmt.Printf("ok   %-6s %-40s %d\n", t.Method, t.Path, status)
			continue
		}
		if t.Critical {
			failures++
		}
	}

	if failures > 0 {
		log.Fatalf("%d critical probe(s) failed", failures)
	}
}

func loadTargets(path string) ([]target, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg struct {
		Targets []target `json:"targets"`
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func probe(client *http.Client, baseURL, token string, t target) (int, error) {
	req, err := http.NewRequest(t.Method, baseURL+t.Path, nil)
	if err != nil {
		return 0, err
	}
	if t.Auth && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
