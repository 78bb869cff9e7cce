// Package http is the inbound HTTP adapter: the webhook endpoint that feeds
// the transition engine and the read endpoint over the analytics snapshots.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"transferops/internal/core/application/usecases/commands"
	"transferops/internal/core/application/usecases/queries"
	"transferops/internal/core/domain/model/entity"
	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/transfer"
	"transferops/internal/pkg/errs"
	"transferops/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const organizationHeader = "X-Organization-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	processActionHandler commands.ProcessActionCommandHandler
	recomputeHandler     commands.RecomputeAnalyticsCommandHandler

	// Query handlers
	routePerformanceHandler queries.GetRoutePerformanceQueryHandler
	demandPatternsHandler   queries.GetDemandPatternsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	processActionHandler commands.ProcessActionCommandHandler,
	recomputeHandler commands.RecomputeAnalyticsCommandHandler,
	routePerformanceHandler queries.GetRoutePerformanceQueryHandler,
	demandPatternsHandler queries.GetDemandPatternsQueryHandler,
) *Server {
	return &Server{
		processActionHandler:    processActionHandler,
		recomputeHandler:        recomputeHandler,
		routePerformanceHandler: routePerformanceHandler,
		demandPatternsHandler:   demandPatternsHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/transfer-events", s.PostTransferEvent)
	e.GET("/api/v1/transfer-analytics", s.GetTransferAnalytics)
	e.GET("/health", s.GetHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Error is the uniform error response body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type entityRefDoc struct {
	Type       string            `json:"type"`
	ExternalID string            `json:"external_id"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type lineDoc struct {
	SKU         string `json:"sku"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
}

type transferEventRequest struct {
	Action                string            `json:"action"`
	TransactionExternalID string            `json:"transaction_external_id"`
	Entities              []entityRefDoc    `json:"entities,omitempty"`
	OriginExternalID      string            `json:"origin_external_id,omitempty"`
	DestinationExternalID string            `json:"destination_external_id,omitempty"`
	Payload               []lineDoc         `json:"payload,omitempty"`
	OccurredAt            time.Time         `json:"occurred_at,omitempty"`
	Metadata              map[string]string `json:"metadata,omitempty"`
}

type transferEventResponse struct {
	TransferID    string `json:"transfer_id"`
	PreviousState string `json:"previous_state"`
	CurrentState  string `json:"current_state"`
	Duplicate     bool   `json:"duplicate"`
	EventID       string `json:"event_id,omitempty"`
}

// PostTransferEvent handles POST /api/v1/transfer-events - processes one
// webhook delivery. Duplicate deliveries return 200 with duplicate=true so
// the source system stops retrying; out-of-order actions return 409 so it
// retries after the missing predecessor arrives.
func (s *Server) PostTransferEvent(ctx echo.Context) error {
	started := time.Now()

	orgID, err := organizationFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	// The raw body goes into the event log verbatim, so read it before parsing.
	rawBody, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, errors.New("unreadable request body"))
	}

	var req transferEventRequest
	if err = json.Unmarshal(rawBody, &req); err != nil {
		metrics.WebhookActionsTotal.WithLabelValues("UNKNOWN", "invalid").Inc()
		return badRequest(ctx, errors.New("invalid request body"))
	}

	action, err := transfer.ActionFromString(req.Action)
	if err != nil {
		metrics.WebhookActionsTotal.WithLabelValues("UNKNOWN", "invalid").Inc()
		return badRequest(ctx, err)
	}

	cmd, err := s.buildProcessCommand(orgID, action, req, rawBody)
	if err != nil {
		metrics.WebhookActionsTotal.WithLabelValues(req.Action, "invalid").Inc()
		return badRequest(ctx, err)
	}

	result, err := s.processActionHandler.Handle(ctx.Request().Context(), cmd)
	metrics.WebhookProcessingSeconds.Observe(time.Since(started).Seconds())
	if err != nil {
		return s.processErrorResponse(ctx, req.Action, err)
	}

	outcome := "accepted"
	if result.Duplicate {
		outcome = "duplicate"
	}
	metrics.WebhookActionsTotal.WithLabelValues(req.Action, outcome).Inc()

	response := transferEventResponse{
		TransferID:    result.TransferID.String(),
		PreviousState: result.PreviousState.String(),
		CurrentState:  result.CurrentState.String(),
		Duplicate:     result.Duplicate,
	}
	if result.EventID.Validate() == nil {
		response.EventID = result.EventID.String()
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) buildProcessCommand(
	orgID kernel.OrgID,
	action transfer.Action,
	req transferEventRequest,
	rawBody []byte,
) (commands.ProcessActionCommand, error) {
	refs := make([]commands.EntityRef, 0, len(req.Entities))
	for _, doc := range req.Entities {
		entityType, err := entity.TypeFromString(doc.Type)
		if err != nil {
			return commands.ProcessActionCommand{}, err
		}

		ref, err := commands.NewEntityRef(entityType, doc.ExternalID, doc.Name, doc.Attributes)
		if err != nil {
			return commands.ProcessActionCommand{}, err
		}
		refs = append(refs, ref)
	}

	var payload transfer.Payload
	if action.IsCreate() {
		lines := make([]transfer.Line, 0, len(req.Payload))
		for _, doc := range req.Payload {
			line, err := transfer.NewLine(doc.SKU, doc.Description, doc.Quantity)
			if err != nil {
				return commands.ProcessActionCommand{}, err
			}
			lines = append(lines, line)
		}

		var err error
		payload, err = transfer.NewPayload(lines)
		if err != nil {
			return commands.ProcessActionCommand{}, err
		}
	}

	return commands.NewProcessActionCommand(
		orgID,
		action,
		req.TransactionExternalID,
		refs,
		req.OriginExternalID,
		req.DestinationExternalID,
		payload,
		req.OccurredAt,
		rawBody,
		req.Metadata,
	)
}

// processErrorResponse maps the processing error taxonomy to HTTP statuses.
func (s *Server) processErrorResponse(ctx echo.Context, action string, err error) error {
	switch {
	case errors.Is(err, errs.ErrConcurrencyConflict):
		// Another delivery holds the row lock; the source should retry.
		metrics.WebhookActionsTotal.WithLabelValues(action, "conflict").Inc()
		return respondError(ctx, http.StatusServiceUnavailable, err)

	case errors.Is(err, transfer.ErrInvalidTransition):
		metrics.WebhookActionsTotal.WithLabelValues(action, "out_of_order").Inc()
		return respondError(ctx, http.StatusConflict, err)

	case errors.Is(err, errs.ErrObjectAlreadyExists):
		metrics.WebhookActionsTotal.WithLabelValues(action, "conflict").Inc()
		return respondError(ctx, http.StatusConflict, err)

	case errors.Is(err, errs.ErrObjectNotFound):
		metrics.WebhookActionsTotal.WithLabelValues(action, "not_found").Inc()
		return respondError(ctx, http.StatusNotFound, err)

	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		metrics.WebhookActionsTotal.WithLabelValues(action, "invalid").Inc()
		return badRequest(ctx, err)

	default:
		metrics.WebhookActionsTotal.WithLabelValues(action, "error").Inc()
		return respondError(ctx, http.StatusInternalServerError, errors.New("failed to process transfer event"))
	}
}

type routePerformanceDoc struct {
	OriginEntityID      string  `json:"origin_entity_id"`
	DestinationEntityID string  `json:"destination_entity_id"`
	TransferCount       int     `json:"transfer_count"`
	CompletedCount      int     `json:"completed_count"`
	AvgLeadTimeMs       int64   `json:"avg_lead_time_ms"`
	DiscrepancyRate     float64 `json:"discrepancy_rate"`
	TotalQuantity       int     `json:"total_quantity"`
}

type dailyVolumeDoc struct {
	Day           time.Time `json:"day"`
	TransferCount int       `json:"transfer_count"`
	Quantity      int       `json:"quantity"`
}

type demandPatternDoc struct {
	DestinationEntityID string           `json:"destination_entity_id"`
	TransferCount       int              `json:"transfer_count"`
	DiscrepancyRate     float64          `json:"discrepancy_rate"`
	DemandScore         float64          `json:"demand_score"`
	DailyVolumes        []dailyVolumeDoc `json:"daily_volumes"`
}

type transferAnalyticsResponse struct {
	Routes         []routePerformanceDoc `json:"routes"`
	DemandPatterns []demandPatternDoc    `json:"demand_patterns"`
}

// GetTransferAnalytics handles GET /api/v1/transfer-analytics - reads the
// analytics snapshots of the caller's organization.
//
// Optional parameters:
//   - route=<origin_uuid>:<destination_uuid> narrows routes to one pair
//   - window=<days> recomputes the snapshots over a trailing window of that
//     many days before reading, instead of serving the scheduled snapshot
func (s *Server) GetTransferAnalytics(ctx echo.Context) error {
	orgID, err := organizationFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	if windowParam := ctx.QueryParam("window"); windowParam != "" {
		if err = s.recomputeForWindow(ctx, orgID, windowParam); err != nil {
			return badRequest(ctx, err)
		}
	}

	routeQuery, err := s.buildRouteQuery(orgID, ctx.QueryParam("route"))
	if err != nil {
		return badRequest(ctx, err)
	}

	routes, err := s.routePerformanceHandler.Handle(ctx.Request().Context(), routeQuery)
	if err != nil {
		return respondError(ctx, http.StatusInternalServerError,
			errors.New("failed to retrieve route performance"))
	}

	demandQuery, err := queries.NewGetDemandPatternsQuery(orgID)
	if err != nil {
		return badRequest(ctx, err)
	}

	patterns, err := s.demandPatternsHandler.Handle(ctx.Request().Context(), demandQuery)
	if err != nil {
		return respondError(ctx, http.StatusInternalServerError,
			errors.New("failed to retrieve demand patterns"))
	}

	response := transferAnalyticsResponse{
		Routes:         make([]routePerformanceDoc, 0, len(routes)),
		DemandPatterns: make([]demandPatternDoc, 0, len(patterns)),
	}

	for _, route := range routes {
		response.Routes = append(response.Routes, routePerformanceDoc{
			OriginEntityID:      route.OriginEntityID.String(),
			DestinationEntityID: route.DestinationEntityID.String(),
			TransferCount:       route.TransferCount,
			CompletedCount:      route.CompletedCount,
			AvgLeadTimeMs:       route.AvgLeadTime.Milliseconds(),
			DiscrepancyRate:     route.DiscrepancyRate,
			TotalQuantity:       route.TotalQuantity,
		})
	}

	for _, pattern := range patterns {
		doc := demandPatternDoc{
			DestinationEntityID: pattern.DestinationEntityID.String(),
			TransferCount:       pattern.TransferCount,
			DiscrepancyRate:     pattern.DiscrepancyRate,
			DemandScore:         pattern.DemandScore,
			DailyVolumes:        make([]dailyVolumeDoc, 0, len(pattern.DailyVolumes)),
		}
		for _, volume := range pattern.DailyVolumes {
			doc.DailyVolumes = append(doc.DailyVolumes, dailyVolumeDoc{
				Day:           volume.Day,
				TransferCount: volume.TransferCount,
				Quantity:      volume.Quantity,
			})
		}
		response.DemandPatterns = append(response.DemandPatterns, doc)
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) recomputeForWindow(ctx echo.Context, orgID kernel.OrgID, windowParam string) error {
	days, err := strconv.Atoi(windowParam)
	if err != nil || days < 1 {
		return errs.NewValueIsInvalidError("window")
	}

	to := time.Now().UTC()
	cmd, err := commands.NewRecomputeAnalyticsCommand(orgID, to.AddDate(0, 0, -days), to)
	if err != nil {
		return err
	}

	return s.recomputeHandler.Handle(ctx.Request().Context(), cmd)
}

func (s *Server) buildRouteQuery(orgID kernel.OrgID, routeParam string) (queries.GetRoutePerformanceQuery, error) {
	if routeParam == "" {
		return queries.NewGetRoutePerformanceQuery(orgID)
	}

	parts := strings.SplitN(routeParam, ":", 2)
	if len(parts) != 2 {
		return queries.GetRoutePerformanceQuery{}, errs.NewValueIsInvalidError("route")
	}

	origin, err := kernel.UUIDFromString(parts[0])
	if err != nil {
		return queries.GetRoutePerformanceQuery{}, err
	}
	destination, err := kernel.UUIDFromString(parts[1])
	if err != nil {
		return queries.GetRoutePerformanceQuery{}, err
	}

	return queries.NewGetRoutePerformanceQueryForRoute(orgID, origin, destination)
}

// GetHealth handles GET /health - liveness probe.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func organizationFromHeader(ctx echo.Context) (kernel.OrgID, error) {
	return kernel.NewOrgID(ctx.Request().Header.Get(organizationHeader))
}

func badRequest(ctx echo.Context, err error) error {
	return respondError(ctx, http.StatusBadRequest, err)
}

func respondError(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
