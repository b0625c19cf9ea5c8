package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/rowguard/rowguard"
)

func (a *API) registerCheckRoutes(router forge.Router) error {
	g := router.Group("/v1/authz", forge.WithGroupTags("authorization"))

	if err := g.POST("/check", a.check,
		forge.WithSummary("Access check"),
		forge.WithDescription("Evaluates whether the principals hold the permission under the given ACL."),
		forge.WithOperationID("authzCheck"),
		forge.WithRequestSchema(CheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Check result", CheckResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/enforce", a.enforce,
		forge.WithSummary("Enforce access"),
		forge.WithDescription("Returns 200 if allowed, 403 if denied."),
		forge.WithOperationID("authzEnforce"),
		forge.WithRequestSchema(CheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Allowed", CheckResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/batch-check", a.batchCheck,
		forge.WithSummary("Batch access check"),
		forge.WithDescription("Evaluates multiple access checks in one request."),
		forge.WithOperationID("authzBatchCheck"),
		forge.WithRequestSchema(BatchCheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Batch results", BatchCheckResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.POST("/permissions", a.permissions,
		forge.WithSummary("Enumerate permissions"),
		forge.WithDescription("Returns every permission named in the ACL with the caller's grant for it."),
		forge.WithOperationID("authzPermissions"),
		forge.WithRequestSchema(PermissionsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Grant map", PermissionsResponse{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) check(ctx forge.Context, req *CheckRequest) (*CheckResponse, error) {
	if req.Permission == "" {
		return nil, forge.BadRequest("permission is required")
	}

	result, err := a.eng.Check(ctx.Context(), toCheckRequest(req))
	if err != nil {
		return nil, mapError(err)
	}

	resp := toCheckResponse(result)
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) enforce(ctx forge.Context, req *CheckRequest) (*CheckResponse, error) {
	if req.Permission == "" {
		return nil, forge.BadRequest("permission is required")
	}

	result, err := a.eng.Check(ctx.Context(), toCheckRequest(req))
	if err != nil {
		return nil, mapError(err)
	}

	resp := toCheckResponse(result)
	if !result.Allowed {
		return resp, ctx.JSON(http.StatusForbidden, resp)
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) batchCheck(ctx forge.Context, req *BatchCheckRequest) (*BatchCheckResponse, error) {
	if len(req.Checks) == 0 {
		return nil, forge.BadRequest("checks cannot be empty")
	}

	results := make([]CheckResponse, len(req.Checks))
	for i := range req.Checks {
		result, err := a.eng.Check(ctx.Context(), toCheckRequest(&req.Checks[i]))
		if err != nil {
			return nil, mapError(err)
		}
		results[i] = *toCheckResponse(result)
	}

	resp := &BatchCheckResponse{Results: results}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) permissions(ctx forge.Context, req *PermissionsRequest) (*PermissionsResponse, error) {
	acl := toACL(req.ACL)
	if err := rowguard.ValidateACL(acl); err != nil {
		return nil, mapError(err)
	}

	grants, err := a.eng.Grants(ctx.Context(), rowguard.NormalizePrincipals(req.Principals), acl)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &PermissionsResponse{Permissions: make(map[string]bool, grants.Len())}
	for p, allowed := range grants.Map() {
		resp.Permissions[string(p)] = allowed
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func toACL(entries []ACE) rowguard.ACL {
	acl := make(rowguard.ACL, len(entries))
	for i, e := range entries {
		permissions := make(rowguard.PermissionSet, len(e.Permissions))
		for j, p := range e.Permissions {
			permissions[j] = rowguard.Permission(p)
		}
		acl[i] = rowguard.ACE{
			Effect:      rowguard.Effect(e.Effect),
			Principal:   rowguard.Principal(e.Principal),
			Permissions: permissions,
		}
	}
	return acl
}

func toCheckRequest(r *CheckRequest) *rowguard.CheckRequest {
	return &rowguard.CheckRequest{
		Principals:   rowguard.NormalizePrincipals(r.Principals),
		Permission:   rowguard.Permission(r.Permission),
		Resource:     toACL(r.ACL),
		ResourceName: r.Resource,
		Metadata:     r.Metadata,
	}
}

func toCheckResponse(r *rowguard.CheckResult) *CheckResponse {
	resp := &CheckResponse{
		Allowed:    r.Allowed,
		Decision:   string(r.Decision),
		Reason:     r.Reason,
		EvalTimeNs: r.EvalTimeNs,
	}
	if r.Matched != nil {
		resp.Matched = &MatchInfo{
			Index:     r.Matched.Index,
			Principal: string(r.Matched.Principal),
			Detail:    r.Matched.Detail,
		}
	}
	return resp
}
