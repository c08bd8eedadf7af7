package handler

import (
	"io"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"inheritance-engine/internal/model"
	"inheritance-engine/internal/rational"
)

func serve(t *testing.T, method, uri, body string) *fasthttp.RequestCtx {
	t.Helper()

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}

	New(slog.New(slog.NewTextHandler(io.Discard, nil))).Handle(&ctx)
	return &ctx
}

const spouseAndParents = `{
	"decedent": {"id": "d1", "name": "Decedent", "death_date": "2024-03-01", "estate_value": "1200000"},
	"heirs": [
		{"id": "s", "name": "Spouse", "relation": "spouse", "status": "normal"},
		{"id": "f", "name": "Father", "relation": "father", "status": "normal"},
		{"id": "m", "name": "Mother", "relation": "mother", "status": "normal"}
	]
}`

func TestCalculate(t *testing.T) {
	ctx := serve(t, fasthttp.MethodPost, "/calculate", spouseAndParents)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))

	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	require.Len(t, resp.Calculation.Results, 3)

	want := []rational.Fraction{rational.MustNew(1, 2), rational.MustNew(1, 4), rational.MustNew(1, 4)}
	for i, r := range resp.Calculation.Results {
		assert.True(t, r.StatutoryShare.Equal(want[i]), "%s: %s", r.ID, r.StatutoryShare)
	}
	require.NotNil(t, resp.Calculation.Results[1].Amount)
	assert.Equal(t, "300000", resp.Calculation.Results[1].Amount.String())
	assert.Equal(t, model.RelationFather, resp.Calculation.Results[1].Relation)
}

func TestCalculateWireFormat(t *testing.T) {
	ctx := serve(t, fasthttp.MethodPost, "/calculate", spouseAndParents)

	var raw struct {
		Calculation struct {
			Results []map[string]any `json:"results"`
		} `json:"calculation"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &raw))
	require.Len(t, raw.Calculation.Results, 3)

	spouse := raw.Calculation.Results[0]
	assert.Equal(t, "spouse", spouse["relation"])
	share, ok := spouse["statutory_share"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1/2", share["text"])
	assert.Equal(t, "50%", share["percent"])
}

func TestValidateEndpoint(t *testing.T) {
	ctx := serve(t, fasthttp.MethodPost, "/validate", `{
		"decedent": {"id": "d1", "death_date": "2024-03-01"},
		"heirs": [{"id": "x", "name": "X", "relation": "child", "status": "deceased"}]
	}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp model.ValidationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.False(t, resp.Valid)
	require.Len(t, resp.ValidationErrors, 1)
	assert.Equal(t, "death_date", resp.ValidationErrors[0].Field)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		uri    string
		body   string
		status int
	}{
		{name: "invalid json", method: fasthttp.MethodPost, uri: "/calculate", body: "{", status: fasthttp.StatusBadRequest},
		{name: "unknown relation", method: fasthttp.MethodPost, uri: "/calculate", body: `{"heirs":[{"id":"a","relation":"cousin","status":"normal"}]}`, status: fasthttp.StatusBadRequest},
		{name: "wrong method", method: fasthttp.MethodGet, uri: "/calculate", status: fasthttp.StatusMethodNotAllowed},
		{name: "unknown path", method: fasthttp.MethodGet, uri: "/nope", status: fasthttp.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := serve(t, tt.method, tt.uri, tt.body)
			require.Equal(t, tt.status, ctx.Response.StatusCode())

			var resp model.ErrorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
			assert.Equal(t, tt.status, resp.Status)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestHealth(t *testing.T) {
	ctx := serve(t, fasthttp.MethodGet, "/health/live", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"status":"ok"}`, string(ctx.Response.Body()))
}
