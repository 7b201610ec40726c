package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/opslens/console/internal/models"
	"github.com/opslens/console/internal/utils"
)

// Endpoint methods sanitize caller input, perform exactly one request via
// do, and normalize the response into the strict shapes in models. Required
// fields that are empty after trimming fail fast before any network call.

// FetchMetrics retrieves the aggregate KPI snapshot.
func (c *Client) FetchMetrics(ctx context.Context) (*models.MetricsSnapshot, error) {
	env, err := c.do(ctx, "fetch metrics", http.MethodGet, "/metrics", nil)
	if err != nil {
		return nil, err
	}

	obj := asObject(env.Data)
	snapshot := &models.MetricsSnapshot{
		Timestamp:            toString(obj["timestamp"]),
		AutoResolutionRate:   toFloat(obj["auto_resolution_rate"]),
		AutoResolved:         toInt(obj["auto_resolved"]),
		HumanAgent:           toInt(obj["human_agent"]),
		AvgCSAT:              toFloat(obj["avg_csat"]),
		KnowledgeGrowthRatio: toFloat(obj["knowledge_growth_ratio"]),
		AvgResolutionHours:   toFloat(obj["avg_resolution_hours"]),
		Raw:                  map[string]any{},
	}
	for key, value := range obj {
		snapshot.Raw[key] = value
	}
	return snapshot, nil
}

// FetchAnalyticsTrends retrieves ticket-theme clusters. The returned report
// always has a non-nil Clusters slice, and every cluster's TopEntities and
// TicketIDs are non-nil even when the backend omits or malforms them.
func (c *Client) FetchAnalyticsTrends(ctx context.Context) (*models.TrendReport, error) {
	env, err := c.do(ctx, "fetch trends", http.MethodGet, "/analytics/trends", nil)
	if err != nil {
		return nil, err
	}

	report := &models.TrendReport{Clusters: []models.TrendCluster{}}
	for _, raw := range asSlice(asObject(env.Data)["clusters"]) {
		obj := asObject(raw)
		if obj == nil {
			continue
		}
		report.Clusters = append(report.Clusters, models.TrendCluster{
			ClusterID:   toInt64(obj["cluster_id"]),
			Label:       toString(obj["label"]),
			Size:        toInt(obj["size"]),
			Trend:       models.TrendDirection(toString(obj["trend"])),
			TopEntities: toStringSlice(obj["top_entities"]),
			TicketIDs:   toLooseStringSlice(obj["ticket_ids"]),
			LastUpdated: toString(obj["last_updated"]),
		})
	}
	return report, nil
}

// FetchPersonas lists the persona identifiers the backend currently serves.
// Entries are trimmed and blank ones dropped.
func (c *Client) FetchPersonas(ctx context.Context) ([]string, error) {
	env, err := c.do(ctx, "fetch personas", http.MethodGet, "/personas", nil)
	if err != nil {
		return nil, err
	}
	return toStringSlice(asObject(env.Data)["personas"]), nil
}

// RouteTicket asks the backend to classify and route a ticket description.
func (c *Client) RouteTicket(ctx context.Context, req models.RouteRequest) (*models.RouteResponse, error) {
	const op = "route ticket"

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, utils.NewAppError(op, "description is required", nil)
	}

	payload := map[string]any{"description": description}
	if persona := strings.TrimSpace(req.Persona); persona != "" {
		payload["persona"] = persona
	}
	if ticketID := strings.TrimSpace(req.TicketID); ticketID != "" {
		payload["ticket_id"] = ticketID
	}
	if len(req.Metadata) > 0 {
		payload["metadata"] = req.Metadata
	}

	env, err := c.do(ctx, op, http.MethodPost, "/tickets/route", payload)
	if err != nil {
		return nil, err
	}

	obj := asObject(env.Data)
	resp := &models.RouteResponse{
		TicketID:           toString(obj["ticket_id"]),
		Persona:            toString(obj["persona"]),
		Decision:           models.RouteDecision(toString(obj["decision"])),
		Classification:     normalizeClassification(obj["classification"]),
		Matches:            []models.KnowledgeMatch{},
		Assistive:          toBool(obj["assistive"]),
		TopSimilarity:      toFloat(obj["top_similarity"]),
		ResolutionProposal: toString(obj["resolution_proposal"]),
	}
	for _, raw := range asSlice(obj["matches"]) {
		match := asObject(raw)
		if match == nil {
			continue
		}
		resp.Matches = append(resp.Matches, models.KnowledgeMatch{
			Content:        toString(match["content"]),
			Similarity:     toFloat(match["similarity"]),
			MatchReason:    toString(match["match_reason"]),
			ArticleID:      toString(match["article_id"]),
			SourceTicketID: toString(match["source_ticket_id"]),
			Title:          toString(match["title"]),
		})
	}
	return resp, nil
}

func normalizeClassification(v any) models.Classification {
	obj := asObject(v)
	return models.Classification{
		IssueCategory:   toString(obj["issue_category"]),
		IssueType:       toString(obj["issue_type"]),
		Urgency:         toString(obj["urgency"]),
		ImpactScope:     toString(obj["impact_scope"]),
		Sentiment:       toString(obj["sentiment"]),
		RequiresHuman:   toBool(obj["requires_human"]),
		NeedsSupervisor: toBool(obj["needs_supervisor"]),
		Confidence:      toFloat(obj["confidence"]),
	}
}

// SubmitFeedback records a CSAT rating. Optional strings blank after
// trimming are omitted from the request entirely.
func (c *Client) SubmitFeedback(ctx context.Context, req models.FeedbackRequest) (*models.FeedbackResponse, error) {
	payload := map[string]any{"rating": req.Rating}
	if source := strings.TrimSpace(req.Source); source != "" {
		payload["source"] = source
	}
	if comment := strings.TrimSpace(req.Comment); comment != "" {
		payload["comment"] = comment
	}
	if ticketID := strings.TrimSpace(req.TicketID); ticketID != "" {
		payload["ticket_id"] = ticketID
	}
	if persona := strings.TrimSpace(req.Persona); persona != "" {
		payload["persona"] = persona
	}

	env, err := c.do(ctx, "submit feedback", http.MethodPost, "/feedback", payload)
	if err != nil {
		return nil, err
	}
	return &models.FeedbackResponse{
		FeedbackID: toString(asObject(env.Data)["feedback_id"]),
	}, nil
}

// FetchKnowledgeQueue lists pending knowledge-article drafts. A supplied
// limit is clamped to [1, 200]; unsupplied query parameters are omitted.
func (c *Client) FetchKnowledgeQueue(ctx context.Context, query models.QueueQuery) (*models.QueueResponse, error) {
	params := url.Values{}
	if status := strings.TrimSpace(query.Status); status != "" {
		params.Set("status", status)
	}
	if query.Limit != nil {
		limit := *query.Limit
		if limit < 1 {
			limit = 1
		}
		if limit > 200 {
			limit = 200
		}
		params.Set("limit", strconv.Itoa(limit))
	}

	path := "/knowledge/queue"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	env, err := c.do(ctx, "fetch knowledge queue", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	obj := asObject(env.Data)
	resp := &models.QueueResponse{
		Items:       []models.KnowledgeQueueItem{},
		AutoApprove: toBool(obj["auto_approve"]),
	}
	for _, raw := range asSlice(obj["items"]) {
		item := asObject(raw)
		if item == nil {
			continue
		}
		resp.Items = append(resp.Items, normalizeQueueItem(item))
	}
	return resp, nil
}

// normalizeQueueItem guarantees a stable non-empty ID for list rendering:
// the backend's id, else the resolution id, else the ticket id, else a
// generated identifier.
func normalizeQueueItem(item map[string]any) models.KnowledgeQueueItem {
	resolutionID := strings.TrimSpace(toString(item["resolution_id"]))
	ticketID := strings.TrimSpace(toString(item["ticket_id"]))

	id := strings.TrimSpace(toString(item["id"]))
	if id == "" {
		id = resolutionID
	}
	if id == "" {
		id = ticketID
	}
	if id == "" {
		id = uuid.NewString()
	}

	return models.KnowledgeQueueItem{
		ID:             id,
		ResolutionID:   resolutionID,
		TicketID:       ticketID,
		Persona:        toString(item["persona"]),
		Status:         toString(item["status"]),
		CreatedAt:      toString(item["created_at"]),
		UpdatedAt:      toString(item["updated_at"]),
		LeadReviewedAt: toString(item["lead_reviewed_at"]),
		SMEReviewedAt:  toString(item["sme_reviewed_at"]),
		ApprovalMode:   toString(item["approval_mode"]),
		ApprovedBy:     toString(item["approved_by"]),
		Draft:          asObject(item["draft"]),
		Resolution:     asObject(item["resolution"]),
	}
}

// ApproveKnowledgeQueueItem approves a pending draft. The item id is
// required and path-escaped; reviewer is optional.
func (c *Client) ApproveKnowledgeQueueItem(ctx context.Context, itemID, reviewer string) (*models.ApproveResponse, error) {
	const op = "approve queue item"

	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, utils.NewAppError(op, "queue item id is required", nil)
	}

	var payload any
	if reviewer := strings.TrimSpace(reviewer); reviewer != "" {
		payload = map[string]any{"reviewer": reviewer}
	}

	path := "/knowledge/queue/" + url.PathEscape(itemID) + "/approve"
	env, err := c.do(ctx, op, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}

	obj := asObject(env.Data)
	status := toString(obj["status"])
	if status == "" {
		status = "unknown"
	}
	return &models.ApproveResponse{
		Status:    status,
		ArticleID: toString(obj["article_id"]),
		Detail:    obj,
	}, nil
}

// FetchHealth retrieves the per-service health map. The report is never nil,
// even when the backend answers with an empty body.
func (c *Client) FetchHealth(ctx context.Context) (models.HealthReport, error) {
	env, err := c.do(ctx, "fetch health", http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	report := models.HealthReport{}
	for name, raw := range asObject(env.Data) {
		obj := asObject(raw)
		if obj == nil {
			report[name] = models.ServiceHealth{Status: toString(raw)}
			continue
		}
		service := models.ServiceHealth{
			Status:  toString(obj["status"]),
			Details: map[string]any{},
		}
		for key, value := range obj {
			if key == "status" {
				continue
			}
			service.Details[key] = value
		}
		report[name] = service
	}
	return report, nil
}

// SendChatMessage sends one chat turn to the support assistant.
func (c *Client) SendChatMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	const op = "send chat message"

	personaName := strings.TrimSpace(req.PersonaName)
	if personaName == "" {
		return nil, utils.NewAppError(op, "persona name is required", nil)
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, utils.NewAppError(op, "user id is required", nil)
	}

	payload := map[string]any{
		"persona_name": personaName,
		"user_id":      userID,
		"message":      req.Message,
	}

	env, err := c.do(ctx, op, http.MethodPost, "/chat", payload)
	if err != nil {
		return nil, err
	}

	obj := asObject(env.Data)
	resp := &models.ChatResponse{
		Message:            toString(obj["message"]),
		Confidence:         toString(obj["confidence"]),
		EscalationDeferred: toBool(obj["escalation_deferred"]),
		AssistAttempts:     toInt(obj["assist_attempts_with_kb"]),
		Sources:            []models.ChatSource{},
		Router:             asObject(obj["router"]),
		TicketID:           toString(obj["glpi_ticket_id"]),
		TicketClosed:       asObject(obj["ticket_section_closed"]),
	}
	for _, raw := range asSlice(obj["sources"]) {
		source := asObject(raw)
		if source == nil {
			continue
		}
		resp.Sources = append(resp.Sources, models.ChatSource{
			ID:      toString(source["id"]),
			Preview: toString(source["preview"]),
			Source:  toString(source["source"]),
		})
	}
	return resp, nil
}
