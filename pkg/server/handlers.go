package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yaklabco/gobbcode/internal/configloader"
	"github.com/yaklabco/gobbcode/internal/logging"
	"github.com/yaklabco/gobbcode/internal/telemetry"
	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/cache"
	"github.com/yaklabco/gobbcode/pkg/config"
	"github.com/yaklabco/gobbcode/pkg/output"
)

// RenderRequest is the body of POST /v1/render.
// Unset fields fall back to the server configuration. A non-empty only or
// except replaces the configured selection for this request; both select
// from the full table, so when both are given except wins.
type RenderRequest struct {
	Source          string   `json:"source"`
	CaseInsensitive *bool    `json:"case_insensitive,omitempty"`
	Only            []string `json:"only,omitempty"`
	Except          []string `json:"except,omitempty"`
	Format          string   `json:"format,omitempty"`
	Sanitize        *bool    `json:"sanitize,omitempty"`
	AnnotateCode    *bool    `json:"annotate_code,omitempty"`
}

// StripRequest is the body of POST /v1/strip.
type StripRequest struct {
	Source string `json:"source"`
}

// ConvertResponse is returned by the render and strip endpoints.
type ConvertResponse struct {
	Output string `json:"output"`
	Format string `json:"format"`
	Cached bool   `json:"cached"`
}

// RuleResponse describes one active rule.
type RuleResponse struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Replace string `json:"replace"`
	Content string `json:"content"`
}

// ErrorResponse represents an error.
type ErrorResponse struct {
	Error      string            `json:"error"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
}

// requestError carries a status code out of request preparation.
type requestError struct {
	status  int
	message string
	details map[string]string
}

func (e *requestError) Error() string { return e.message }

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx, span := telemetry.Tracer().Start(r.Context(), "render")
	defer span.End()

	var req RenderRequest
	if !s.decode(w, r, &req) {
		return
	}

	parser, proc, caseInsensitive, err := s.prepare(&req)
	if err != nil {
		s.fail(ctx, w, span, err)
		return
	}

	format := proc.Options().Format
	key := cache.Key("render", s.rules, req.Source,
		strconv.FormatBool(caseInsensitive),
		strings.Join(req.Only, ","),
		strings.Join(req.Except, ","),
		string(format),
		strconv.FormatBool(proc.Options().Sanitize),
		strconv.FormatBool(proc.Options().AnnotateCode),
	)

	span.SetAttributes(
		attribute.String("bbcode.format", string(format)),
		attribute.Int("bbcode.source_bytes", len(req.Source)),
	)

	s.convert(ctx, w, span, key, string(format), func(ctx context.Context) (string, error) {
		return proc.Convert(ctx, parser, req.Source, caseInsensitive)
	})
}

func (s *Server) handleStrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := telemetry.Tracer().Start(r.Context(), "strip")
	defer span.End()

	var req StripRequest
	if !s.decode(w, r, &req) {
		return
	}

	span.SetAttributes(attribute.Int("bbcode.source_bytes", len(req.Source)))

	parser := s.parser.Clone()
	s.convert(ctx, w, span, cache.Key("strip", s.rules, req.Source), string(config.FormatText), func(ctx context.Context) (string, error) {
		return parser.StripContext(ctx, req.Source)
	})
}

// convert serves run's output through the cache with the render timeout.
func (s *Server) convert(
	ctx context.Context,
	w http.ResponseWriter,
	span trace.Span,
	key, format string,
	run func(context.Context) (string, error),
) {
	logger := logging.FromContext(ctx)

	if out, ok, err := s.cache.Get(ctx, key); err != nil {
		logger.Warn("cache get failed", logging.FieldError, err)
	} else if ok {
		span.SetAttributes(attribute.Bool("bbcode.cached", true))
		sendJSON(w, ConvertResponse{Output: out, Format: format, Cached: true}, http.StatusOK)
		return
	}

	if timeout := s.cfg.Server.RenderTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := run(ctx)
	if err != nil {
		s.fail(ctx, w, span, err)
		return
	}

	if err := s.cache.Set(ctx, key, out); err != nil {
		logger.Warn("cache set failed", logging.FieldError, err)
	}

	span.SetAttributes(attribute.Bool("bbcode.cached", false))
	sendJSON(w, ConvertResponse{Output: out, Format: format}, http.StatusOK)
}

// prepare builds the per-request parser and processor.
func (s *Server) prepare(req *RenderRequest) (*bbcode.Parser, *output.Processor, bool, error) {
	parser := s.parser.Clone()
	known := parser.Rules().Names()

	var selection [2][]string
	for i, sel := range []struct {
		field string
		names []string
	}{
		{"only", req.Only},
		{"except", req.Except},
	} {
		if len(sel.names) == 0 {
			continue
		}
		resolved, unknown := configloader.ResolveRuleNames(sel.names, known)
		if len(unknown) > 0 {
			return nil, nil, false, &requestError{
				status:  http.StatusBadRequest,
				message: "unknown rules",
				details: map[string]string{sel.field: strings.Join(unknown, ",")},
			}
		}
		selection[i] = resolved
	}
	// Both paths of Select recompute from the full table, so a request
	// selection replaces the configured one.
	configloader.Select(parser, selection[0], selection[1])

	opts := output.OptionsFromConfig(s.cfg.Output)
	if req.Format != "" {
		format, err := config.ParseOutputFormat(req.Format)
		if err != nil {
			return nil, nil, false, &requestError{status: http.StatusBadRequest, message: err.Error()}
		}
		opts.Format = format
	}
	if req.Sanitize != nil {
		opts.Sanitize = *req.Sanitize
	}
	if req.AnnotateCode != nil {
		opts.AnnotateCode = *req.AnnotateCode
	}

	caseInsensitive := s.cfg.IsCaseInsensitive()
	if req.CaseInsensitive != nil {
		caseInsensitive = *req.CaseInsensitive
	}

	return parser, output.New(opts), caseInsensitive, nil
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	active := s.parser.ActiveRules()
	rules := make([]RuleResponse, 0, active.Len())
	active.Each(func(name string, rule bbcode.Rule) {
		rules = append(rules, RuleResponse{
			Name:    name,
			Pattern: rule.Pattern(),
			Replace: rule.Replace(),
			Content: rule.Content(),
		})
	})
	sendJSON(w, rules, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	sendJSON(w, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// decode reads a JSON body, answering 400 or 413 itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return false
		}
		logging.FromContext(r.Context()).Debug("invalid request body", logging.FieldError, err)
		sendError(w, "invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

// fail maps err to a response and records it on span.
func (s *Server) fail(ctx context.Context, w http.ResponseWriter, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		sendErrorResponse(w, ErrorResponse{Error: reqErr.message, StatusCode: reqErr.status, Details: reqErr.details})
	case errors.Is(err, context.DeadlineExceeded):
		sendError(w, "conversion timed out", http.StatusGatewayTimeout)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		logging.FromContext(ctx).Error("conversion failed", logging.FieldError, err)
		sendError(w, "conversion failed", http.StatusInternalServerError)
	}
}

func sendJSON(w http.ResponseWriter, body any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(body)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendErrorResponse(w, ErrorResponse{Error: message, StatusCode: status})
}

func sendErrorResponse(w http.ResponseWriter, resp ErrorResponse) {
	sendJSON(w, resp, resp.StatusCode)
}
