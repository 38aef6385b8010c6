// Minimal end-to-end integration test for the CiviGuard API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

var baseURL = getenv("API_URL", "http://localhost:8080/v1")

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	email := fmt.Sprintf("citoyen+%d@example.org", time.Now().Unix())

	token := register(email)
	code := createReport(token)
	trackReport(code)
	anonCode := createAnonymousReport()
	trackReport(anonCode)
	checkRoles()

	fmt.Println("✓ all endpoints passed")
}

// ----------------------------- auth

func register(email string) string {
	var resp struct{ Token string }
	doJSON("POST", "/auth/register", map[string]any{
		"email":    email,
		"password": "motdepasse1",
		"name":     "Citoyen Test",
	}, &resp, http.StatusOK)
	if resp.Token == "" {
		log.Fatal("register: empty token")
	}
	return resp.Token
}

// ----------------------------- reports

func createReport(token string) string {
	var resp struct {
		Code string
		Role string
	}
	doAuthJSON("POST", "/reports", token, map[string]any{
		"category":    "corruption",
		"title":       "Marché public truqué",
		"description": "Appel d'offres attribué sans mise en concurrence.",
		"location":    "Libreville",
	}, &resp, http.StatusOK)
	if resp.Code == "" {
		log.Fatal("create report: empty tracking code")
	}
	if resp.Role != "agent-anticorruption" {
		log.Fatalf("create report: routed to %q, want agent-anticorruption", resp.Role)
	}
	return resp.Code
}

func createAnonymousReport() string {
	var resp struct{ Code string }
	doJSON("POST", "/reports/anonymous", map[string]any{
		"category":    "renseignement",
		"title":       "Fuite de documents",
		"description": "Documents classifiés aperçus hors site.",
	}, &resp, http.StatusOK)
	if resp.Code == "" {
		log.Fatal("anonymous report: empty tracking code")
	}
	return resp.Code
}

func trackReport(code string) {
	var resp struct{ Status string }
	doJSON("GET", "/reports/track/"+code, nil, &resp, http.StatusOK)
	if resp.Status == "" {
		log.Fatalf("track %s: empty status", code)
	}
}

func checkRoles() {
	var resp []struct {
		Role       string
		Categories []string
	}
	doJSON("GET", "/roles", nil, &resp, http.StatusOK)
	if len(resp) == 0 {
		log.Fatal("roles: empty table")
	}
}

// ----------------------------- plumbing

func doJSON(method, path string, body, out any, wantStatus int) {
	doAuthJSON(method, path, "", body, out, wantStatus)
}

func doAuthJSON(method, path, token string, body, out any, wantStatus int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		log.Fatalf("%s %s: status %d, want %d", method, path, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
}
