package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

// Load driver for a running gateway. Point it at an instance (and a model
// that instance resolves) and it reports the end-to-end latency of the
// completions path, which includes the per-request provider fan-out.
func main() {
	target := flag.String("target", "http://localhost:8080", "Gateway base URL")
	model := flag.String("model", "gpt-3.5-turbo", "Model id to request")
	apiKey := flag.String("api-key", "", "Gateway API key, if authentication is enabled")
	duration := flag.Duration("duration", 10*time.Second, "Duration of the attack")
	rate := flag.Int("rate", 50, "Requests per second")
	flag.Parse()

	body, _ := json.Marshal(map[string]any{
		"model":    *model,
		"messages": []map[string]string{{"role": "user", "content": "Hello"}},
	})

	header := http.Header{"Content-Type": []string{"application/json"}}
	if *apiKey != "" {
		header.Set("Authorization", "Bearer "+*apiKey)
	}

	targeter := vegeta.NewStaticTargeter(vegeta.Target{
		Method: http.MethodPost,
		URL:    *target + "/v1/chat/completions",
		Body:   body,
		Header: header,
	})

	attacker := vegeta.NewAttacker()
	attackRate := vegeta.Rate{Freq: *rate, Per: time.Second}

	fmt.Printf("Attacking %s for %s at %d req/s (model %q)\n", *target, *duration, *rate, *model)

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, attackRate, *duration, "completions") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Printf("Requests:  %d\n", metrics.Requests)
	fmt.Printf("Success:   %.2f%%\n", metrics.Success*100)
	fmt.Printf("Mean:      %s\n", metrics.Latencies.Mean)
	fmt.Printf("P50:       %s\n", metrics.Latencies.P50)
	fmt.Printf("P95:       %s\n", metrics.Latencies.P95)
	fmt.Printf("P99:       %s\n", metrics.Latencies.P99)
	fmt.Printf("Max:       %s\n", metrics.Latencies.Max)
	if len(metrics.Errors) > 0 {
		fmt.Println("Errors:")
		for _, e := range metrics.Errors {
			fmt.Printf("  %s\n", e)
		}
		os.Exit(1)
	}
}
