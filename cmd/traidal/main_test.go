//go:build blackbox

package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/traidal/journal"
)

var traidalBin string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "traidal-blackbox-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmp)

	traidalBin = filepath.Join(tmp, "traidal")

	// Build the binary once for all tests.
	cmd := exec.Command("go", "build", "-o", traidalBin, ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	cmd := exec.Command(traidalBin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("command failed: %v\nargs: %v\noutput:\n%s", err, args, string(out))
	}
	return string(out)
}

var accountIDRe = regexp.MustCompile(`acc_[0-9A-Z]{26}`)

func TestChallengeFlow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "traidal.db")

	out := run(t, "--db", dbPath, "account", "add",
		"--name", "Blackbox 25k", "--type", "PROP", "--challenge", "ONE_PHASE",
		"--balance", "25000", "--p1-target", "2000")
	acct := accountIDRe.FindString(out)
	if acct == "" {
		t.Fatalf("no account id in output:\n%s", out)
	}

	for _, pnl := range []string{"800", "-300", "1600"} {
		out = run(t, "--db", dbPath, "trade", "add",
			"--account", acct, "--pair", "GBPJPY",
			"--open", "2024-05-06T08:00:00Z", "--close", "2024-05-06T12:00:00Z", "--pnl", pnl)
	}
	if !strings.Contains(out, "Phase passed: PHASE_1 → FUNDED") {
		t.Fatalf("expected phase transition, got:\n%s", out)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var phase, typ string
	if err := db.QueryRow(`SELECT phase, type FROM accounts WHERE id = ?`, acct).Scan(&phase, &typ); err != nil {
		t.Fatal(err)
	}
	if phase != "FUNDED" || typ != "FUNDED" {
		t.Fatalf("expected FUNDED account, got phase %s type %s", phase, typ)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM trading_alerts WHERE type = 'PHASE_PASSED'`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 PHASE_PASSED alert, got %d", n)
	}
}

func TestMonitorPostsWebhook(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "traidal.db")

	out := run(t, "--db", dbPath, "account", "add",
		"--name", "Live", "--balance", "5000", "--max-dd", "500")
	acct := accountIDRe.FindString(out)
	run(t, "--db", dbPath, "trade", "add", "--account", acct, "--pair", "XAUUSD",
		"--open", "2024-05-06T08:00:00Z", "--close", "2024-05-06T09:00:00Z", "--pnl", "-480")

	got := make(chan journal.TradingAlert, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var a journal.TradingAlert
		if err := json.NewDecoder(r.Body).Decode(&a); err == nil {
			got <- a
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cmd := exec.Command(traidalBin, "--db", dbPath, "monitor", "--interval", "1h")
	cmd.Env = append(os.Environ(), "TRAIDAL_WEBHOOK_URL="+srv.URL, "TRAIDAL_METRICS_ADDR=")
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}

	select {
	case a := <-got:
		if a.Type != journal.AlertMaxDrawdown || a.Severity != journal.SeverityCritical {
			t.Errorf("unexpected alert %+v", a)
		}
	case <-time.After(10 * time.Second):
		t.Error("no webhook received")
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Wait(); err != nil {
		t.Fatalf("monitor exit: %v", err)
	}
}
