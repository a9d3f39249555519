// Package dispatch implements the bridge's request/response boundary: it
// validates the inbound envelope, resolves the capability, encodes the
// arguments, drives the worker subprocess, and shapes the outcome into the
// single outward contract.
package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taddiemason/Gmail-MCP-Server/internal/audit"
	"github.com/taddiemason/Gmail-MCP-Server/internal/codec"
	"github.com/taddiemason/Gmail-MCP-Server/internal/limits"
	"github.com/taddiemason/Gmail-MCP-Server/internal/protocol"
	"github.com/taddiemason/Gmail-MCP-Server/internal/registry"
	"github.com/taddiemason/Gmail-MCP-Server/internal/security"
	"github.com/taddiemason/Gmail-MCP-Server/internal/worker"
)

const maxRequestBytes = 1 << 20

// Handler serves POST /v1/tools/execute.
type Handler struct {
	registry *registry.Registry
	invoker  worker.Invoker
	limiter  *limits.Limiter
	audit    audit.Logger
	logger   *slog.Logger
}

// NewHandler wires the dispatch pipeline.
func NewHandler(reg *registry.Registry, invoker worker.Invoker, limiter *limits.Limiter, auditLog audit.Logger, logger *slog.Logger) *Handler {
	return &Handler{
		registry: reg,
		invoker:  invoker,
		limiter:  limiter,
		audit:    auditLog,
		logger:   logger,
	}
}

// ServeHTTP handles one dispatch call. Every error path is recovered here and
// shaped into the outward contract; nothing propagates out of the handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			if h.logger != nil {
				h.logger.Error("panic in dispatch pipeline", "panic", rec)
			}
			writeError(w, http.StatusInternalServerError, protocol.ErrorResponse{
				Error:     fmt.Sprintf("internal error: %v", rec),
				Type:      protocol.KindExecutionFailed,
				Traceback: string(debug.Stack()),
			})
		}
	}()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, protocol.ErrorResponse{
			Error: "method not allowed",
			Type:  protocol.KindInvalidRequest,
		})
		return
	}

	var req protocol.ExecuteRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, protocol.ErrorResponse{
			Error: fmt.Sprintf("invalid request body: %v", err),
			Type:  protocol.KindInvalidRequest,
		})
		return
	}
	if strings.TrimSpace(req.ToolName) == "" {
		writeError(w, http.StatusBadRequest, protocol.ErrorResponse{
			Error: "tool_name is required",
			Type:  protocol.KindInvalidRequest,
		})
		return
	}

	correlationID := correlationID(req.Arguments)

	cap, err := h.registry.Resolve(req.ToolName)
	if err != nil {
		var notFound *registry.NotFoundError
		if errors.As(err, &notFound) {
			h.record(r, audit.Event{
				Type:          "resolve_failed",
				Tool:          req.ToolName,
				CorrelationID: correlationID,
				Outcome:       protocol.KindUnknownCapability,
			})
			writeError(w, http.StatusBadRequest, protocol.ErrorResponse{
				Error: notFound.Error(),
				Type:  protocol.KindUnknownCapability,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, protocol.ErrorResponse{
			Error: err.Error(),
			Type:  protocol.KindExecutionFailed,
		})
		return
	}

	if err := cap.ValidateArguments(req.Arguments); err != nil {
		writeError(w, http.StatusBadRequest, protocol.ErrorResponse{
			Error: err.Error(),
			Type:  protocol.KindInvalidRequest,
		})
		return
	}

	if h.logger != nil {
		h.logger.Info("tool dispatch",
			"tool", cap.Name,
			"requested_as", req.ToolName,
			"correlation_id", correlationID,
			"args", security.RedactArguments(req.Arguments),
		)
	}
	h.record(r, audit.Event{
		Type:          "dispatch",
		Tool:          cap.Name,
		CorrelationID: correlationID,
	})

	release, err := h.limiter.Acquire(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, protocol.ErrorResponse{
			Error: err.Error(),
			Type:  protocol.KindExecutionFailed,
		})
		return
	}
	defer release()

	started := time.Now()
	res, err := h.invoker.Invoke(r.Context(), codec.Invocation{
		Tool:      cap.Name,
		Schema:    cap.Schema,
		Arguments: req.Arguments,
	}, cap.Timeout)
	if err != nil {
		h.record(r, audit.Event{
			Type:          "outcome",
			Tool:          cap.Name,
			CorrelationID: correlationID,
			Outcome:       protocol.KindExecutionFailed,
			Detail:        err.Error(),
		})
		writeError(w, http.StatusInternalServerError, protocol.ErrorResponse{
			Error: err.Error(),
			Type:  protocol.KindExecutionFailed,
		})
		return
	}

	outcome := protocol.Classify(res)
	if h.logger != nil {
		h.logger.Info("tool outcome",
			"tool", cap.Name,
			"correlation_id", correlationID,
			"variant", outcome.Variant,
			"duration", time.Since(started),
		)
	}
	h.record(r, audit.Event{
		Type:          "outcome",
		Tool:          cap.Name,
		CorrelationID: correlationID,
		Outcome:       string(outcome.Variant),
		Detail:        outcome.Kind,
	})

	switch outcome.Variant {
	case protocol.VariantSuccess:
		writeJSON(w, http.StatusOK, protocol.ExecuteResponse{Result: outcome.Payload})
	case protocol.VariantRaw:
		// Best-effort passthrough: unstructured worker output is still a
		// successful call from the caller's point of view.
		writeJSON(w, http.StatusOK, protocol.ExecuteResponse{Result: outcome.Text})
	default:
		writeError(w, http.StatusInternalServerError, protocol.ErrorResponse{
			Error:     outcome.Message,
			Type:      outcome.Kind,
			Traceback: outcome.Traceback,
		})
	}
}

func (h *Handler) record(r *http.Request, event audit.Event) {
	if h.audit != nil {
		h.audit.Record(r.Context(), event)
	}
}

func correlationID(args map[string]any) string {
	if args != nil {
		if raw, ok := args["correlation_id"].(string); ok && raw != "" {
			return raw
		}
		if raw, ok := args["request_id"].(string); ok && raw != "" {
			return raw
		}
	}
	return uuid.NewString()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, body protocol.ErrorResponse) {
	writeJSON(w, status, body)
}
