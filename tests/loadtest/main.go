package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:8090"
	numWorkers   = 50
	testDuration = 10 * time.Second
)

var networkStates = []string{"online", "offline", "online"}

var promptActions = []string{"rate", "remind_later", "decline"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== Review Reminder Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Usage events (POST /launch, /foreground) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.5 {
			return doPost("/launch", nil, http.StatusAccepted)
		}
		return doPost("/foreground", nil, http.StatusAccepted)
	})

	fmt.Println("\n--- Phase 2: Mixed load (events, network flaps, prompt polling) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doPost("/foreground", nil, http.StatusAccepted)
		case r < 0.50:
			return doPost("/resign", nil, http.StatusAccepted)
		case r < 0.60:
			return doReachability(rng)
		case r < 0.85:
			return doGetPrompt()
		default:
			return doGet("/state")
		}
	})

	fmt.Println("\n--- Phase 3: Prompt responses under load ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.30:
			return doPost("/foreground", nil, http.StatusAccepted)
		case r < 0.60:
			return doGetPrompt()
		case r < 0.80:
			return doRespond(rng)
		default:
			return doGet("/state")
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doPost(path string, body interface{}, want int) result {
	var payload io.Reader = http.NoBody
	if body != nil {
		data, _ := json.Marshal(body)
		payload = bytes.NewReader(data)
	}
	name := "POST " + path
	start := time.Now()
	resp, err := httpClient.Post(baseURL+path, "application/json", payload)
	lat := time.Since(start)
	if err != nil {
		return result{name, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{name, resp.StatusCode, lat, resp.StatusCode != want}
}

func doGet(path string) result {
	name := "GET " + path
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{name, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{name, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doGetPrompt() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/prompt")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /prompt", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	ok := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent
	return result{"GET /prompt", resp.StatusCode, lat, !ok}
}

func doReachability(rng *rand.Rand) result {
	state := networkStates[rng.Intn(len(networkStates))]
	return doPost("/reachability", map[string]string{"state": state}, http.StatusAccepted)
}

// doRespond answers the prompt if one is up; 409 means nothing was shown.
func doRespond(rng *rand.Rand) result {
	action := promptActions[rng.Intn(len(promptActions))]
	r := doPost("/prompt/respond", map[string]string{"action": action}, http.StatusOK)
	if r.status == http.StatusConflict {
		r.err = false
	}
	return r
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dÂµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
