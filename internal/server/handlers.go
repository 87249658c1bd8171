// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pdiddy/vidvaan/internal/aggregate"
	"github.com/pdiddy/vidvaan/internal/export"
	"github.com/pdiddy/vidvaan/internal/filter"
	"github.com/pdiddy/vidvaan/internal/summary"
	"github.com/pdiddy/vidvaan/internal/view"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 16

type searchRequest struct {
	Topic string `json:"topic"`
}

// streamEvent is the data of one SSE event of a search stream.
type streamEvent struct {
	SearchID   string           `json:"search_id"`
	Topic      string           `json:"topic"`
	Repository string           `json:"repository,omitempty"`
	Added      int              `json:"added"`
	Done       int              `json:"done"`
	Total      int              `json:"total"`
	Error      string           `json:"error,omitempty"`
	Page       view.Page        `json:"page"`
	Reports    []providerReport `json:"reports,omitempty"`
}

type providerReport struct {
	Repository string `json:"repository"`
	Count      int    `json:"count"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// searchHandler handles POST /api/search. It supersedes any running
// search and streams one "snapshot" event per provider followed by
// "complete", or "superseded" if a newer search replaced this one.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	topic, err := aggregate.ValidateTopic(req.Topic)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	token := s.beginSearch(topic, cancel)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	stale := false
	res, err := s.searcher.Search(ctx, topic, func(u aggregate.Update) {
		if stale {
			return
		}
		if !s.store.Merge(token, u.Snapshot) {
			stale = true
			s.staleResult()
			return
		}
		ev := streamEvent{
			SearchID:   u.SearchID,
			Topic:      topic,
			Repository: string(u.Repository),
			Added:      u.Added,
			Done:       u.Done,
			Total:      u.Total,
			Page:       s.store.Snapshot().View(),
		}
		if u.Err != nil {
			ev.Error = u.Err.Error()
		}
		sendEvent(w, flusher, "snapshot", ev)
	})
	if err != nil {
		sendEvent(w, flusher, "error", map[string]string{"error": err.Error()})
		return
	}

	if stale || !s.store.Complete(token, res.Dataset) {
		if !stale {
			s.staleResult()
		}
		sendEvent(w, flusher, "superseded", map[string]string{"search_id": res.SearchID})
		return
	}

	reports := make([]providerReport, len(res.Reports))
	for i, rep := range res.Reports {
		reports[i] = providerReport{
			Repository: string(rep.Repository),
			Count:      rep.Count,
			DurationMS: rep.Duration.Milliseconds(),
		}
		if rep.Err != nil {
			reports[i].Error = rep.Err.Error()
		}
	}
	sendEvent(w, flusher, "complete", streamEvent{
		SearchID: res.SearchID,
		Topic:    topic,
		Added:    len(res.Dataset),
		Done:     len(res.Reports),
		Total:    len(res.Reports),
		Page:     s.store.Snapshot().View(),
		Reports:  reports,
	})
}

func (s *Server) staleResult() {
	if s.metrics != nil {
		s.metrics.StaleResults.Inc()
	}
}

// publicationsHandler handles GET /api/publications?page=N.
func (s *Server) publicationsHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		writeJSON(w, http.StatusOK, s.store.Snapshot().View())
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid page %q", raw))
		return
	}
	writeJSON(w, http.StatusOK, s.store.SetPage(n))
}

type filtersResponse struct {
	Applied  bool            `json:"applied"`
	Criteria filter.Criteria `json:"criteria"`
	Page     view.Page       `json:"page"`
}

// filtersHandler handles POST /api/filters. An inverted year range is not
// an error: the view is returned unchanged with applied=false.
func (s *Server) filtersHandler(w http.ResponseWriter, r *http.Request) {
	var c filter.Criteria
	if !decodeJSON(w, r, &c) {
		return
	}
	applied := c.Validate() == nil
	state := s.store.ApplyFilters(c)
	writeJSON(w, http.StatusOK, filtersResponse{
		Applied:  applied,
		Criteria: state.Criteria,
		Page:     state.View(),
	})
}

// summaryHandler handles POST /api/summary over the loaded dataset.
func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	if s.summarizer == nil {
		writeError(w, http.StatusServiceUnavailable, "summary service not configured")
		return
	}
	snap := s.store.Snapshot()
	text, err := s.summarizer.Summarize(r.Context(), snap.Original.Titles())
	switch {
	case errors.Is(err, summary.ErrNothingToSummarize):
		writeError(w, http.StatusConflict, "no publications loaded")
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if !s.store.SetSummary(snap.Token, text) {
		writeError(w, http.StatusConflict, "search changed while summarizing")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": text})
}

// exportHandler handles GET /api/export?format=. The original dataset is
// exported, not the filtered view.
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}
	exp, err := export.ForFormat(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := s.store.Snapshot()
	doc := export.Document{
		Topic:        snap.Topic,
		Publications: snap.Original,
		Summary:      s.store.Summary(),
	}

	var buf bytes.Buffer
	if err := exp.Export(&buf, doc); err != nil {
		s.logger.Error().Err(err).Str("format", format).Msg("export failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(exp, doc)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// decodeJSON reads a size-limited JSON body into v, writing a 400 on
// failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// sendEvent writes one SSE event and flushes it.
func sendEvent(w http.ResponseWriter, flusher http.Flusher, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	flusher.Flush()
}
