package handler

import (
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"inheritance-engine/internal/engine"
	"inheritance-engine/internal/model"
)

// Handler serves the calculation API.
type Handler struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle routes a request:
//
//	POST /calculate   shares, reserved shares and validation errors
//	POST /validate    validation errors only
//	GET  /health/live liveness probe
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	h.logger.Debug("request", slog.String("method", string(ctx.Method())), slog.String("path", path))

	switch path {
	case "/calculate":
		h.handleCalculate(ctx)
	case "/validate":
		h.handleValidate(ctx)
	case "/health/live":
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) handleCalculate(ctx *fasthttp.RequestCtx) {
	req, ok := decodeRequest(ctx)
	if !ok {
		return
	}

	resp := engine.Process(req)
	if resp.CalculationMetadata.CalculationOutcome == model.OutcomeFailure {
		for _, m := range resp.Calculation.Messages {
			if m.Level == model.LevelCritical {
				h.logger.Error("calculation failed",
					slog.String("calculation_id", resp.CalculationMetadata.CalculationID),
					slog.String("code", m.Code),
					slog.String("error", m.Message))
			}
		}
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleValidate(ctx *fasthttp.RequestCtx) {
	req, ok := decodeRequest(ctx)
	if !ok {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, engine.Validate(req))
}

func decodeRequest(ctx *fasthttp.RequestCtx) (*model.CalculationRequest, bool) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return nil, false
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	return &req, true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
