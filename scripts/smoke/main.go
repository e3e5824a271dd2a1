// Command smoke probes a running booking API instance and verifies that
// every read endpoint answers with the expected status and a well-formed
// response envelope. Intended for post-deploy checks.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type probe struct {
	Name     string
	Method   string
	Path     string
	Want     int
	Envelope bool
	Critical bool
}

type result struct {
	Probe    probe
	Status   int
	Duration time.Duration
	Err      error
}

func main() {
	var (
		base    string
		prefix  string
		date    string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&prefix, "prefix", "/api/v1", "API route prefix")
	flag.StringVar(&date, "date", time.Now().Format("2006-01-02"), "date used for availability probes")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	probes := []probe{
		{Name: "health", Method: http.MethodGet, Path: "/health", Want: http.StatusOK, Critical: true},
		{Name: "readiness", Method: http.MethodGet, Path: "/ready", Want: http.StatusOK, Critical: true},
		{Name: "metrics", Method: http.MethodGet, Path: "/metrics", Want: http.StatusOK},
		{Name: "availability day", Method: http.MethodGet, Path: prefix + "/availability/day?date=" + date, Want: http.StatusOK, Envelope: true, Critical: true},
		{Name: "availability week", Method: http.MethodGet, Path: prefix + "/availability/week?date=" + date, Want: http.StatusOK, Envelope: true},
		{Name: "availability month", Method: http.MethodGet, Path: prefix + "/availability/month?date=" + date, Want: http.StatusOK, Envelope: true},
		{Name: "providers", Method: http.MethodGet, Path: prefix + "/providers", Want: http.StatusOK, Envelope: true, Critical: true},
		{Name: "bookings", Method: http.MethodGet, Path: prefix + "/bookings", Want: http.StatusOK, Envelope: true},
		{Name: "settings", Method: http.MethodGet, Path: prefix + "/settings", Want: http.StatusOK, Envelope: true},
		{Name: "audit", Method: http.MethodGet, Path: prefix + "/audit", Want: http.StatusOK, Envelope: true},
		{Name: "availability rejects bad date", Method: http.MethodGet, Path: prefix + "/availability/day?date=nonsense", Want: http.StatusBadRequest, Envelope: true},
	}

	client := &http.Client{Timeout: timeout}
	var failures int
	fmt.Printf("Smoke check against %s\n", base)
	fmt.Println("=========================")
	for _, p := range probes {
		res := run(client, base, p)
		label := "OK"
		if res.Err != nil {
			label = "FAIL"
			if p.Critical {
				failures++
			}
		}
		fmt.Printf("[%-4s] %-30s %s %s\n", label, p.Name, p.Method, p.Path)
		fmt.Printf("       status=%d want=%d (%s)\n", res.Status, p.Want, res.Duration)
		if res.Err != nil {
			fmt.Printf("       error: %v\n", res.Err)
		}
	}
	if failures > 0 {
		fmt.Printf("%d critical probe(s) failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("all critical probes passed")
}

func run(client *http.Client, base string, p probe) result {
	res := result{Probe: p}
	url := strings.TrimRight(base, "/") + p.Path

	req, err := http.NewRequest(p.Method, url, nil)
	if err != nil {
		res.Err = err
		return res
	}
	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	if resp.StatusCode != p.Want {
		res.Err = fmt.Errorf("unexpected status %d", resp.StatusCode)
		return res
	}
	if p.Envelope {
		res.Err = checkEnvelope(resp.Body, p.Want >= 400)
	}
	return res
}

// checkEnvelope verifies the standard {data,error,...} response contract:
// success responses carry data without error, failures the reverse.
func checkEnvelope(body io.Reader, wantError bool) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("malformed envelope: %w", err)
	}
	if wantError && len(envelope.Error) == 0 {
		return fmt.Errorf("expected error payload, got none")
	}
	if !wantError && len(envelope.Error) != 0 {
		return fmt.Errorf("unexpected error payload: %s", envelope.Error)
	}
	return nil
}
