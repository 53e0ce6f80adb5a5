// Command shadow_compare replays read-only requests against the legacy
// PHP backend and this API and reports divergence. It is the parity
// gate for cutting traffic over: any diff on a critical target fails
// the run.
//
// The comparison normalizes two known representation gaps before
// diffing: PDO returns numeric columns as strings, and the two stacks
// format timestamps differently, so numeric-looking strings are parsed
// and volatile timestamp fields are dropped on both sides.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetsFile struct {
	Targets []target `json:"targets"`
}

// Fields whose values legitimately differ between the two backends.
var volatileFields = map[string]bool{
	"created_at":      true,
	"updated_at":      true,
	"sent_at":         true,
	"last_message_at": true,
	"expires_at":      true,
}

type runner struct {
	client     *http.Client
	goBase     string
	legacyBase string
	authToken  string
}

type verdict struct {
	target       target
	goStatus     int
	legacyStatus int
	match        bool
	err          error
}

func main() {
	var (
		goBase      = flag.String("go-base", "http://localhost:8080/api/v1", "Go API base URL")
		legacyBase  = flag.String("legacy-base", "http://localhost/backend/api", "Legacy PHP API base URL")
		targetsPath = flag.String("targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "JSON targets file")
		authToken   = flag.String("auth-token", "", "Bearer token forwarded to both backends")
		timeout     = flag.Duration("timeout", 5*time.Second, "per-request timeout")
	)
	flag.Parse()

	targets, err := loadTargets(*targetsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load targets: %v\n", err)
		os.Exit(2)
	}

	r := &runner{
		client:     &http.Client{Timeout: *timeout},
		goBase:     strings.TrimRight(*goBase, "/"),
		legacyBase: strings.TrimRight(*legacyBase, "/"),
		authToken:  *authToken,
	}

	breaking := 0
	fmt.Printf("Comparing %d targets: %s vs %s\n\n", len(targets), r.goBase, r.legacyBase)
	for _, tgt := range targets {
		v := r.compare(tgt)
		printVerdict(v)
		if tgt.Critical && (v.err != nil || !v.match) {
			breaking++
		}
	}

	fmt.Printf("\nBreaking diffs: %d\n", breaking)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets in %s", path)
	}
	return file.Targets, nil
}

func (r *runner) compare(tgt target) verdict {
	v := verdict{target: tgt}

	goStatus, goBody, err := r.fetch(r.goBase, tgt)
	if err != nil {
		v.err = fmt.Errorf("go side: %w", err)
		return v
	}
	legacyStatus, legacyBody, err := r.fetch(r.legacyBase, tgt)
	if err != nil {
		v.err = fmt.Errorf("legacy side: %w", err)
		return v
	}

	v.goStatus = goStatus
	v.legacyStatus = legacyStatus
	v.match = goStatus == legacyStatus && jsonEquivalent(goBody, legacyBody)
	return v
}

func (r *runner) fetch(base string, tgt target) (int, []byte, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, base+path, nil)
	if err != nil {
		return 0, nil, err
	}
	if r.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.authToken)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func jsonEquivalent(a, b []byte) bool {
	var av, bv interface{}
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	return reflect.DeepEqual(canonical(av), canonical(bv))
}

// canonical rewrites a decoded JSON value so both backends compare
// equal when only representation differs.
func canonical(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			if volatileFields[k] {
				continue
			}
			out[k] = canonical(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = canonical(inner)
		}
		return out
	case string:
		// PDO hands back numeric columns as strings.
		if n, err := strconv.ParseFloat(val, 64); err == nil && val != "" {
			return n
		}
		return val
	case float64:
		return val
	default:
		return val
	}
}

func printVerdict(v verdict) {
	label := "OK  "
	switch {
	case v.err != nil:
		label = "ERR "
	case !v.match:
		label = "DIFF"
	}
	fmt.Printf("[%s] %s %s", label, v.target.Method, v.target.Path)
	if v.err != nil {
		fmt.Printf("  (%v)", v.err)
	} else if !v.match {
		fmt.Printf("  (go=%d legacy=%d)", v.goStatus, v.legacyStatus)
	}
	if v.target.Critical {
		fmt.Print("  [critical]")
	}
	fmt.Println()
}
