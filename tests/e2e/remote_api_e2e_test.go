//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "https://scrollforge.fly.dev"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("evaluate rejects empty catalog", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/enhance/evaluate", "", "", map[string]any{
			"slots":   1,
			"stats":   []int{0},
			"scrolls": []any{},
			"goal":    []int{1},
		})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	t.Run("catalogs endpoints", func(t *testing.T) {
		status, indexBody, err := doRequest(client, http.MethodGet, baseURL+"/catalogs/index.json", "", "", nil)
		if err != nil {
			t.Fatalf("catalog index request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("catalog index status=%d body=%s", status, string(indexBody))
		}
		var index map[string]any
		if err := json.Unmarshal(indexBody, &index); err != nil {
			t.Fatalf("unmarshal catalog index: %v body=%s", err, string(indexBody))
		}

		status, fileBody, err := doRequest(client, http.MethodGet, baseURL+"/catalogs/starter.yaml", "", "", nil)
		if err != nil {
			t.Fatalf("catalog file request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("catalog file status=%d body=%s", status, string(fileBody))
		}
		if len(fileBody) == 0 {
			t.Fatalf("catalog file empty")
		}
	})

	t.Run("register evaluate history ops", func(t *testing.T) {
		status, registerBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/auth/register", "", "", nil)
		if status != http.StatusCreated {
			t.Fatalf("register status=%d body=%s", status, string(registerBody))
		}
		var creds map[string]any
		if err := json.Unmarshal(registerBody, &creds); err != nil {
			t.Fatalf("unmarshal register response: %v body=%s", err, string(registerBody))
		}
		clientID, _ := creds["client_id"].(string)
		clientKey, _ := creds["client_key"].(string)
		if clientID == "" || clientKey == "" {
			t.Fatalf("expected client_id and client_key in register response, got=%v", creds)
		}

		evaluateReq := map[string]any{
			"slots": 1,
			"stats": []int{106, 9},
			"scrolls": []any{
				map[string]any{"percent": 0.6, "dark": false, "cost": 50, "stats": []int{2, 1}},
			},
			"goal": []int{108, 10},
		}
		status, evalBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/enhance/evaluate", clientID, clientKey, evaluateReq)
		if status != http.StatusOK {
			t.Fatalf("evaluate status=%d body=%s", status, string(evalBody))
		}
		var eval map[string]any
		if err := json.Unmarshal(evalBody, &eval); err != nil {
			t.Fatalf("unmarshal evaluate response: %v body=%s", err, string(evalBody))
		}
		if _, ok := eval["p_goal"]; !ok {
			t.Fatalf("expected p_goal in evaluate response, got=%v", eval)
		}

		historyURL := baseURL + "/api/enhance/history?client_id=" + clientID + "&limit=20"
		status, historyBody, err := doRequest(client, http.MethodGet, historyURL, clientID, clientKey, nil)
		if err != nil {
			t.Fatalf("history request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("history status=%d body=%s", status, string(historyBody))
		}
		var hist map[string]any
		if err := json.Unmarshal(historyBody, &hist); err != nil {
			t.Fatalf("unmarshal history response: %v body=%s", err, string(historyBody))
		}
		if len(asSlice(hist["decisions"])) == 0 {
			t.Fatalf("expected recorded decisions in history response")
		}

		status, kpiBody, err := doRequest(client, http.MethodGet, baseURL+"/ops/kpi", "", "", nil)
		if err != nil {
			t.Fatalf("kpi request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(kpiBody))
		}
		var kpi map[string]any
		if err := json.Unmarshal(kpiBody, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(kpiBody))
		}
		if _, ok := kpi["evaluate_total"]; !ok {
			t.Fatalf("expected evaluate_total in kpi response")
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url, clientID, clientKey string, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, clientID, clientKey, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url, clientID, clientKey string, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if strings.TrimSpace(clientID) != "" {
			req.Header.Set("X-Client-ID", clientID)
		}
		if strings.TrimSpace(clientKey) != "" {
			req.Header.Set("X-Client-Key", clientKey)
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
