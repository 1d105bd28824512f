package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rook-computer/starfield/internal/render"
	"github.com/rook-computer/starfield/internal/starfield"
	"github.com/rook-computer/starfield/internal/state"
)

const maxResizeBody = 1 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type statusResponse struct {
	Phase        string    `json:"phase"`
	Label        string    `json:"label"`
	Mode         string    `json:"mode"`
	Frames       uint64    `json:"frames"`
	Stars        int       `json:"stars"`
	ActiveFlares int       `json:"activeFlares"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type modeResponse struct {
	Name             string  `json:"name"`
	Pattern          string  `json:"pattern"`
	Fallback         bool    `json:"fallback"`
	StarCount        int     `json:"starCount"`
	BaseSpeed        float64 `json:"baseSpeed"`
	BaseColor        *[3]int `json:"baseColor"`
	TwinkleEnabled   bool    `json:"twinkleEnabled"`
	TwinkleIntensity float64 `json:"twinkleIntensity"`
	CrossSpawnChance float64 `json:"crossSpawnChance"`
}

type resizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	mux.HandleFunc("/modes", func(w http.ResponseWriter, r *http.Request) { handleModes(w, r, deps) })
	mux.HandleFunc("/resize", func(w http.ResponseWriter, r *http.Request) { handleResize(w, r, deps) })
	return mux
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	// Encode into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := deps.Frames.EncodePNG(&buf); err != nil {
		if errors.Is(err, render.ErrNoFrame) {
			writeAPIError(w, http.StatusServiceUnavailable, "no_frame", "no frame rendered yet")
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, &buf)
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, newStatusResponse(deps.Status.Snapshot()))
}

func newStatusResponse(s state.State) statusResponse {
	return statusResponse{
		Phase:        s.Phase.String(),
		Label:        s.Label,
		Mode:         s.Frame.Mode,
		Frames:       s.Frame.Frames,
		Stars:        s.Frame.Stars,
		ActiveFlares: s.Frame.ActiveFlares,
		Width:        s.Frame.Width,
		Height:       s.Frame.Height,
		UpdatedAt:    s.UpdatedAt,
	}
}

func handleModes(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	modes := deps.Modes()
	resp := make([]modeResponse, 0, len(modes)+1)
	for _, m := range modes {
		resp = append(resp, newModeResponse(m))
	}
	// The fallback has no pattern: it applies when nothing above matched.
	fallback := newModeResponse(starfield.Mode{Config: starfield.DefaultConfig()})
	fallback.Fallback = true
	resp = append(resp, fallback)
	writeJSON(w, http.StatusOK, resp)
}

func newModeResponse(m starfield.Mode) modeResponse {
	resp := modeResponse{
		Name:             m.Config.Name,
		Pattern:          m.Pattern,
		StarCount:        m.Config.StarCount,
		BaseSpeed:        m.Config.BaseSpeed,
		TwinkleEnabled:   m.Config.TwinkleEnabled,
		TwinkleIntensity: m.Config.TwinkleIntensity,
		CrossSpawnChance: m.Config.CrossSpawnChance,
	}
	if c := m.Config.BaseColor; c != nil {
		resp.BaseColor = &[3]int{int(c.R), int(c.G), int(c.B)}
	}
	return resp
}

func handleResize(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var req resizeRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxResizeBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		writeAPIError(w, http.StatusBadRequest, "invalid_size", "width and height must be positive")
		return
	}

	if !deps.Resize.RequestResize(req.Width, req.Height) {
		writeAPIError(w, http.StatusServiceUnavailable, "resize_busy", "resize queue is full")
		return
	}
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
