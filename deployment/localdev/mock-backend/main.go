// mock-backend fakes the support backend for local consolectl development.
// Payloads are deliberately sloppy in places (string similarities, missing
// queue ids) to exercise the client's normalization.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

func main() {
	mux := http.NewServeMux()

	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"timestamp":              time.Now().UTC().Format(time.RFC3339),
			"auto_resolution_rate":   0.42,
			"auto_resolved":          37,
			"human_agent":            51,
			"avg_csat":               4.1,
			"knowledge_growth_ratio": 0.18,
			"avg_resolution_hours":   6.5,
		})
	})

	mux.HandleFunc("/analytics/trends", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"clusters": []map[string]any{
				{
					"cluster_id":   0,
					"label":        "VPN drops on office wifi",
					"size":         14,
					"trend":        "growing",
					"top_entities": []string{"vpn", "wifi", "office"},
					"ticket_ids":   []any{"T-1001", 1002, "T-1003"},
					"last_updated": time.Now().UTC().Format(time.RFC3339),
				},
				{
					// Sloppy cluster: arrays missing entirely.
					"cluster_id": 1,
					"label":      "printer offline",
					"size":       6,
					"trend":      "stable",
				},
			},
		})
	})

	mux.HandleFunc("/personas", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"personas": []any{"ol_rpi", " ", "", "ol_acme", 7},
		})
	})

	mux.HandleFunc("/tickets/route", func(w http.ResponseWriter, r *http.Request) {
		if !enforcePost(w, r) {
			return
		}
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if desc, _ := req["description"].(string); strings.TrimSpace(desc) == "" {
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, map[string]any{"error": "description is required."})
			return
		}
		writeJSON(w, map[string]any{
			"ticket_id": req["ticket_id"],
			"persona":   "ol_acme",
			"decision":  "assistive",
			"assistive": true,
			"classification": map[string]any{
				"issue_category":   "network",
				"issue_type":       "diagnostic",
				"urgency":          "medium",
				"impact_scope":     "single_user",
				"sentiment":        "neutral",
				"requires_human":   false,
				"needs_supervisor": false,
				"confidence":       "0.74",
			},
			"matches": []map[string]any{
				{"title": "Reset VPN profile", "similarity": "0.82", "match_reason": "vector", "article_id": "kb-101"},
				{"title": "Wifi driver rollback", "similarity": 0.63, "match_reason": "tags", "article_id": "kb-077"},
			},
			"top_similarity": "0.82",
		})
	})

	mux.HandleFunc("/feedback", func(w http.ResponseWriter, r *http.Request) {
		if !enforcePost(w, r) {
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]any{"feedback_id": "fb-20260901-0001"})
	})

	mux.HandleFunc("/knowledge/queue", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"auto_approve": false,
			"items": []map[string]any{
				{
					"id":         "665f1c0b9d2a4e0001a3b001",
					"persona":    "ol_acme",
					"status":     "awaiting_approval",
					"updated_at": time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339),
				},
				{
					// No id: client must fall back to resolution_id.
					"resolution_id": "res-4411",
					"ticket_id":     "T-1042",
					"persona":       "ol_rpi",
					"status":        "awaiting_approval",
				},
			},
		})
	})

	mux.HandleFunc("/knowledge/queue/", func(w http.ResponseWriter, r *http.Request) {
		if !enforcePost(w, r) {
			return
		}
		if !strings.HasSuffix(r.URL.Path, "/approve") {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]any{"error": "not found"})
			return
		}
		writeJSON(w, map[string]any{"status": "approved", "article_id": "kb-202"})
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"app":          map[string]any{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)},
			"mongo":        map[string]any{"status": "ok", "latency_ms": 4},
			"google_drive": map[string]any{"status": "degraded", "detail": "quota warning"},
			"openai":       map[string]any{"status": "ok"},
			"glpi":         map[string]any{"status": "error", "detail": "timeout"},
		})
	})

	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		if !enforcePost(w, r) {
			return
		}
		writeJSON(w, map[string]any{
			"message":                 "Try reconnecting after resetting your VPN profile; I've linked the steps below.",
			"confidence":              "HIGH",
			"escalation_deferred":     false,
			"assist_attempts_with_kb": 1,
			"sources": []map[string]any{
				{"id": "kb_doc_001", "preview": "Open the VPN client, remove the stale profile...", "source": "kb-101"},
			},
		})
	})

	logger := log.New(log.Writer(), "backend-mock ", log.LstdFlags|log.Lmicroseconds)
	srv := &http.Server{
		Addr:    ":8001",
		Handler: logRequests(logger, mux),
	}

	logger.Println("listening on :8001")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server error: %v", err)
	}
}

func enforcePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func logRequests(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rw.status, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
