package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/id"
)

func (a *API) registerDecisionRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("decisions"))

	if err := g.GET("/decisions", a.listDecisions,
		forge.WithSummary("Query decision logs"),
		forge.WithDescription("Returns recorded access decisions with optional filters."),
		forge.WithOperationID("listDecisions"),
		forge.WithRequestSchema(ListDecisionsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Decision list", []*decisionlog.Entry{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/decisions/count", a.countDecisions,
		forge.WithSummary("Count decision logs"),
		forge.WithDescription("Returns the number of recorded decisions matching the filters."),
		forge.WithOperationID("countDecisions"),
		forge.WithRequestSchema(ListDecisionsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Decision count", CountResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/decisions/:decisionId", a.getDecision,
		forge.WithSummary("Get decision"),
		forge.WithDescription("Returns a single recorded decision by ID."),
		forge.WithOperationID("getDecision"),
		forge.WithResponseSchema(http.StatusOK, "Decision entry", &decisionlog.Entry{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) getDecision(ctx forge.Context, _ *GetDecisionRequest) (*decisionlog.Entry, error) {
	decisionID, err := id.ParseDecisionID(ctx.Param("decisionId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid decision ID: %v", err))
	}

	e, err := a.eng.Store().GetDecision(ctx.Context(), decisionID)
	if err != nil {
		return nil, mapError(err)
	}

	return e, ctx.JSON(http.StatusOK, e)
}

func (a *API) listDecisions(ctx forge.Context, req *ListDecisionsRequest) ([]*decisionlog.Entry, error) {
	filter, err := toDecisionFilter(req)
	if err != nil {
		return nil, err
	}
	filter.Limit = defaultLimit(req.Limit)
	filter.Offset = req.Offset

	entries, err := a.eng.Store().ListDecisions(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}

	return entries, ctx.JSON(http.StatusOK, entries)
}

func (a *API) countDecisions(ctx forge.Context, req *ListDecisionsRequest) (*CountResponse, error) {
	filter, err := toDecisionFilter(req)
	if err != nil {
		return nil, err
	}

	count, err := a.eng.Store().CountDecisions(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &CountResponse{Count: count}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func toDecisionFilter(req *ListDecisionsRequest) (*decisionlog.QueryFilter, error) {
	filter := &decisionlog.QueryFilter{
		Permission: req.Permission,
		Resource:   req.Resource,
		Principal:  req.Principal,
		Decision:   req.Decision,
	}

	if req.After != "" {
		t, err := time.Parse(time.RFC3339, req.After)
		if err != nil {
			return nil, forge.BadRequest("invalid after timestamp")
		}
		filter.After = &t
	}
	if req.Before != "" {
		t, err := time.Parse(time.RFC3339, req.Before)
		if err != nil {
			return nil, forge.BadRequest("invalid before timestamp")
		}
		filter.Before = &t
	}
	return filter, nil
}
