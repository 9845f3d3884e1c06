package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eugenenazirov/wpconfig/internal/render"
	"github.com/eugenenazirov/wpconfig/internal/resolver"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler serves a configuration snapshot resolved once at startup.
type Handler struct {
	config      resolver.Config
	servedSince time.Time

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler over the resolved configuration. The
// snapshot is reported as served since the handler was built.
func NewHandler(cfg resolver.Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		config: cfg,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.servedSince = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	_ = r
	settings := h.config.Settings()
	resp := configResponse{
		Settings:    make([]settingResponse, 0, len(settings)),
		ServedSince: h.servedSince,
	}
	for _, s := range settings {
		resp.Settings = append(resp.Settings, newSettingResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	s, ok := h.config.Lookup(key)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown setting", "no setting named "+key)
		return
	}
	writeJSON(w, http.StatusOK, newSettingResponse(s))
}

func (h *Handler) handleRenderConfig(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(r.PathValue("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid format", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, h.config, format, render.Options{Redact: true}); err != nil {
		writeInternalError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleGetVariables(w http.ResponseWriter, r *http.Request) {
	_ = r
	vars := resolver.Variables()
	resp := variablesResponse{Variables: make([]variableResponse, 0, len(vars))}
	for _, v := range vars {
		resp.Variables = append(resp.Variables, variableResponse{
			Name:    v.Name,
			Default: v.Default,
			Key:     v.Key,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) isSecretKey(key string) bool {
	s, ok := h.config.Lookup(key)
	return ok && s.Secret
}

func newSettingResponse(s resolver.Setting) settingResponse {
	value := s.Value
	if s.Secret {
		value = render.RedactedValue
	}
	return settingResponse{
		Key:    s.Key,
		EnvVar: s.EnvVar,
		Value:  value,
		Source: string(s.Source),
		Secret: s.Secret,
	}
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type settingResponse struct {
	Key    string `json:"key"`
	EnvVar string `json:"envVar,omitempty"`
	Value  any    `json:"value"`
	Source string `json:"source"`
	Secret bool   `json:"secret"`
}

type configResponse struct {
	Settings    []settingResponse `json:"settings"`
	ServedSince time.Time         `json:"servedSince"`
}

type variableResponse struct {
	Name    string `json:"name"`
	Default string `json:"default"`
	Key     string `json:"key"`
}

type variablesResponse struct {
	Variables []variableResponse `json:"variables"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
