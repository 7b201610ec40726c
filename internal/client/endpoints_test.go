package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/opslens/console/internal/models"
)

func TestFetchAnalyticsTrendsAlwaysReturnsArrays(t *testing.T) {
	payloads := []string{
		`{}`,
		`{"clusters": null}`,
		`{"clusters": "oops"}`,
		`{"clusters": [{"cluster_id": 1, "label": "x", "top_entities": null, "ticket_ids": 42}]}`,
	}

	for _, payload := range payloads {
		c := stubClient(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, payload), nil
		})
		report, err := c.FetchAnalyticsTrends(context.Background())
		if err != nil {
			t.Fatalf("payload %s: unexpected error: %v", payload, err)
		}
		if report.Clusters == nil {
			t.Fatalf("payload %s: clusters is nil", payload)
		}
		for _, cluster := range report.Clusters {
			if cluster.TopEntities == nil || cluster.TicketIDs == nil {
				t.Fatalf("payload %s: cluster arrays not normalized: %+v", payload, cluster)
			}
		}
	}
}

func TestFetchAnalyticsTrendsCoercesMixedTicketIDs(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK,
			`{"clusters": [{"cluster_id": 2, "label": "vpn", "size": 3, "trend": "growing",
			  "top_entities": ["vpn", 9, "wifi"], "ticket_ids": ["T-1", 1002, null]}]}`), nil
	})

	report, err := c.FetchAnalyticsTrends(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cluster := report.Clusters[0]
	if len(cluster.TopEntities) != 2 || cluster.TopEntities[0] != "vpn" {
		t.Fatalf("top_entities not filtered to strings: %v", cluster.TopEntities)
	}
	if len(cluster.TicketIDs) != 2 || cluster.TicketIDs[1] != "1002" {
		t.Fatalf("ticket_ids not coerced: %v", cluster.TicketIDs)
	}
	if cluster.Trend != models.TrendGrowing {
		t.Fatalf("unexpected trend: %s", cluster.Trend)
	}
}

func TestFetchPersonasDropsBlankEntries(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"personas": ["ol_rpi", " ", "", "ol_acme"]}`), nil
	})

	personas, err := c.FetchPersonas(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(personas) != 2 || personas[0] != "ol_rpi" || personas[1] != "ol_acme" {
		t.Fatalf("unexpected personas: %v", personas)
	}
}

func TestRouteTicketRequiresDescription(t *testing.T) {
	called := false
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	_, err := c.RouteTicket(context.Background(), models.RouteRequest{Description: "   "})
	if err == nil {
		t.Fatal("expected a validation error for a blank description")
	}
	if called {
		t.Fatal("validation failure must not issue a network call")
	}
}

func TestRouteTicketTrimsInputAndCoercesSimilarity(t *testing.T) {
	var sent map[string]any
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(raw, &sent); err != nil {
			t.Fatalf("request body not JSON: %v", err)
		}
		return jsonResponse(http.StatusOK,
			`{"decision": "assistive", "assistive": true,
			  "matches": [{"title": "a", "similarity": "0.82"}, {"title": "b", "similarity": "junk"}],
			  "top_similarity": "0.82"}`), nil
	})

	resp, err := c.RouteTicket(context.Background(), models.RouteRequest{
		Description: "  vpn drops hourly  ",
		Persona:     " ol_acme ",
		TicketID:    "  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sent["description"] != "vpn drops hourly" {
		t.Fatalf("description not trimmed: %q", sent["description"])
	}
	if sent["persona"] != "ol_acme" {
		t.Fatalf("persona not trimmed: %q", sent["persona"])
	}
	if _, present := sent["ticket_id"]; present {
		t.Fatal("blank ticket_id must be omitted")
	}

	if resp.TopSimilarity != 0.82 {
		t.Fatalf("top_similarity not coerced: %v", resp.TopSimilarity)
	}
	if resp.Matches[0].Similarity != 0.82 {
		t.Fatalf("string similarity not coerced: %v", resp.Matches[0].Similarity)
	}
	if resp.Matches[1].Similarity != 0 {
		t.Fatalf("junk similarity must default to 0: %v", resp.Matches[1].Similarity)
	}
	if resp.Decision != models.DecisionAssistive {
		t.Fatalf("unexpected decision: %s", resp.Decision)
	}
}

func TestRouteTicketHandlesMissingMatches(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"decision": "human_agent", "matches": null}`), nil
	})

	resp, err := c.RouteTicket(context.Background(), models.RouteRequest{Description: "help"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Matches == nil || len(resp.Matches) != 0 {
		t.Fatalf("matches must normalize to an empty slice: %#v", resp.Matches)
	}
}

func TestSubmitFeedbackOmitsBlankOptionalFields(t *testing.T) {
	var sent map[string]any
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(raw, &sent)
		resp := jsonResponse(http.StatusCreated, `{"feedback_id": "fb-9"}`)
		return resp, nil
	})

	resp, err := c.SubmitFeedback(context.Background(), models.FeedbackRequest{
		Rating:   4,
		Comment:  "  great  ",
		TicketID: "   ",
		Persona:  "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent["comment"] != "great" {
		t.Fatalf("comment not trimmed: %q", sent["comment"])
	}
	for _, key := range []string{"ticket_id", "persona", "source"} {
		if _, present := sent[key]; present {
			t.Fatalf("blank %s must be omitted from the request", key)
		}
	}
	if resp.FeedbackID != "fb-9" {
		t.Fatalf("unexpected feedback id: %q", resp.FeedbackID)
	}
}

func TestFetchKnowledgeQueueClampsLimit(t *testing.T) {
	cases := []struct {
		limit *int
		want  string
	}{
		{limit: intPtr(0), want: "1"},
		{limit: intPtr(500), want: "200"},
		{limit: intPtr(50), want: "50"},
		{limit: nil, want: ""},
	}

	for _, tc := range cases {
		var got string
		c := stubClient(func(req *http.Request) (*http.Response, error) {
			if req.URL.Query().Has("limit") {
				got = req.URL.Query().Get("limit")
			}
			return jsonResponse(http.StatusOK, `{"items": []}`), nil
		})
		if _, err := c.FetchKnowledgeQueue(context.Background(), models.QueueQuery{Limit: tc.limit}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("limit %v: sent %q, want %q", tc.limit, got, tc.want)
		}
	}
}

func intPtr(v int) *int { return &v }

func TestFetchKnowledgeQueueSynthesizesIDs(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{
			"auto_approve": "true",
			"items": [
				{"id": "abc"},
				{"resolution_id": "res-1", "ticket_id": "T-1"},
				{"ticket_id": "T-2"},
				{},
				{}
			]
		}`), nil
	})

	resp, err := c.FetchKnowledgeQueue(context.Background(), models.QueueQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.AutoApprove {
		t.Fatal("string auto_approve not coerced to bool")
	}

	items := resp.Items
	if items[0].ID != "abc" {
		t.Fatalf("explicit id not kept: %q", items[0].ID)
	}
	if items[1].ID != "res-1" {
		t.Fatalf("resolution_id fallback not applied: %q", items[1].ID)
	}
	if items[2].ID != "T-2" {
		t.Fatalf("ticket_id fallback not applied: %q", items[2].ID)
	}
	if items[3].ID == "" || items[4].ID == "" {
		t.Fatal("generated ids must be non-empty")
	}
	if items[3].ID == items[4].ID {
		t.Fatal("generated ids must not collide")
	}
}

func TestFetchKnowledgeQueueSendsStatusFilter(t *testing.T) {
	var query string
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		query = req.URL.RawQuery
		return jsonResponse(http.StatusOK, `{"items": []}`), nil
	})

	_, err := c.FetchKnowledgeQueue(context.Background(), models.QueueQuery{Status: "awaiting_approval"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query != "status=awaiting_approval" {
		t.Fatalf("unexpected query: %q", query)
	}
}

func TestApproveQueueItemRequiresID(t *testing.T) {
	called := false
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	if _, err := c.ApproveKnowledgeQueueItem(context.Background(), "  ", ""); err == nil {
		t.Fatal("expected a validation error for a blank id")
	}
	if called {
		t.Fatal("validation failure must not issue a network call")
	}
}

func TestApproveQueueItemEscapesIDAndDefaultsStatus(t *testing.T) {
	var path string
	var hasBody bool
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		path = req.URL.EscapedPath()
		hasBody = req.Body != nil
		return jsonResponse(http.StatusOK, `{"article_id": "kb-7"}`), nil
	})

	resp, err := c.ApproveKnowledgeQueueItem(context.Background(), "weird/id", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(path, "weird%2Fid") {
		t.Fatalf("id not path-escaped: %s", path)
	}
	if hasBody {
		t.Fatal("empty reviewer must omit the request body")
	}
	if resp.Status != "unknown" {
		t.Fatalf("missing status must default to unknown, got %q", resp.Status)
	}
	if resp.ArticleID != "kb-7" {
		t.Fatalf("article id not carried over: %q", resp.ArticleID)
	}
}

func TestApproveQueueItemSendsReviewer(t *testing.T) {
	var sent map[string]any
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(raw, &sent)
		return jsonResponse(http.StatusOK, `{"status": "approved"}`), nil
	})

	resp, err := c.ApproveKnowledgeQueueItem(context.Background(), "abc", "  lead-reviewer ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent["reviewer"] != "lead-reviewer" {
		t.Fatalf("reviewer not trimmed and sent: %#v", sent)
	}
	if resp.Status != "approved" {
		t.Fatalf("unexpected status: %q", resp.Status)
	}
}

func TestFetchHealthDefaultsToEmptyReport(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		header := make(http.Header)
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       http.NoBody,
			Header:     header,
		}, nil
	})

	report, err := c.FetchHealth(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report == nil || len(report) != 0 {
		t.Fatalf("expected an empty report, got %#v", report)
	}
}

func TestFetchHealthKeepsExtraFields(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK,
			`{"mongo": {"status": "ok", "latency_ms": 4}, "glpi": "down"}`), nil
	})

	report, err := c.FetchHealth(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mongo := report["mongo"]
	if mongo.Status != "ok" {
		t.Fatalf("unexpected mongo status: %q", mongo.Status)
	}
	if mongo.Details["latency_ms"] != float64(4) {
		t.Fatalf("extra fields not preserved: %#v", mongo.Details)
	}
	if report["glpi"].Status != "down" {
		t.Fatalf("scalar service entry not coerced: %#v", report["glpi"])
	}
}

func TestSendChatMessageValidatesAndNormalizesSources(t *testing.T) {
	called := false
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	if _, err := c.SendChatMessage(context.Background(), models.ChatRequest{UserID: "u1"}); err == nil {
		t.Fatal("expected a validation error for a blank persona")
	}
	if _, err := c.SendChatMessage(context.Background(), models.ChatRequest{PersonaName: "ol_acme"}); err == nil {
		t.Fatal("expected a validation error for a blank user id")
	}
	if called {
		t.Fatal("validation failures must not issue network calls")
	}

	c = stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK,
			`{"message": "hello", "confidence": "HIGH", "sources": null}`), nil
	})
	resp, err := c.SendChatMessage(context.Background(), models.ChatRequest{
		PersonaName: " ol_acme ",
		UserID:      " u1 ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Sources == nil || len(resp.Sources) != 0 {
		t.Fatalf("sources must normalize to an empty slice: %#v", resp.Sources)
	}
	if resp.Message != "hello" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestFetchMetricsCoercesAndKeepsRaw(t *testing.T) {
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{
			"auto_resolution_rate": "0.42",
			"auto_resolved": 37,
			"avg_csat": 4.1,
			"experimental_field": "kept"
		}`), nil
	})

	snapshot, err := c.FetchMetrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.AutoResolutionRate != 0.42 {
		t.Fatalf("string rate not coerced: %v", snapshot.AutoResolutionRate)
	}
	if snapshot.AutoResolved != 37 {
		t.Fatalf("unexpected auto_resolved: %d", snapshot.AutoResolved)
	}
	if snapshot.Raw["experimental_field"] != "kept" {
		t.Fatalf("raw payload not preserved: %#v", snapshot.Raw)
	}
}
