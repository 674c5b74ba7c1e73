package server

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rushteam/outfit/core"
	"github.com/rushteam/outfit/pkg/validate"
	"github.com/rushteam/outfit/rerank"
)

// recommendRequest 是 /api/v1/recommend 的查询参数。
type recommendRequest struct {
	Temperature *float64 `validate:"omitempty,min=-50,max=50"`
	Purpose     string   `validate:"omitempty,oneof=casual formal ceremonial"`
	Color       string   `validate:"omitempty,max=64"`
	Limit       int      `validate:"min=1,max=50"`
}

type scoredView struct {
	core.ClothingItem
	Score float64 `json:"score"`
}

type pairView struct {
	Top    scoredView `json:"top"`
	Bottom scoredView `json:"bottom"`
	Score  float64    `json:"score"`
}

type recommendResponse struct {
	Query   core.Query `json:"query"`
	Pairs   []pairView `json:"pairs"`
	NoMatch bool       `json:"no_match"`
}

type catalogResponse struct {
	Items []core.ClothingItem `json:"items"`
	Count int                 `json:"count"`
}

type errorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Fields  []validate.FieldError `json:"fields,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"items":  s.engine.Catalog().Len(),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	all := s.engine.Catalog().All()
	items := make([]core.ClothingItem, 0, len(all))
	for _, it := range all {
		items = append(items, it.ClothingItem)
	}
	s.writeJSON(w, http.StatusOK, catalogResponse{Items: items, Count: len(items)})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRecommend(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.engine.Recommend(r.Context(), core.Query{
		Temperature: req.Temperature,
		Purpose:     req.Purpose,
		Color:       req.Color,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("recommend failed")
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	RecommendPairs.Observe(float64(len(res.Pairs)))
	if res.NoMatch {
		RecommendNoMatchTotal.Inc()
	}

	pairs := rerank.Truncate(res.Pairs, req.Limit)
	out := recommendResponse{
		Query:   res.Query,
		Pairs:   make([]pairView, 0, len(pairs)),
		NoMatch: res.NoMatch,
	}
	for _, p := range pairs {
		out.Pairs = append(out.Pairs, pairView{
			Top:    scoredView{ClothingItem: p.Top.Item.ClothingItem, Score: p.Top.Score},
			Bottom: scoredView{ClothingItem: p.Bottom.Item.ClothingItem, Score: p.Bottom.Score},
			Score:  p.Score,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) parseRecommend(r *http.Request) (*recommendRequest, error) {
	q := r.URL.Query()
	req := &recommendRequest{
		Purpose: strings.ToLower(strings.TrimSpace(q.Get("purpose"))),
		Color:   strings.ToLower(strings.TrimSpace(q.Get("color"))),
		Limit:   s.limit,
	}
	if v := strings.TrimSpace(q.Get("temperature")); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err == nil && math.IsNaN(t) {
			err = strconv.ErrSyntax
		}
		if err != nil {
			return nil, core.WrapDomainError("server", core.ErrorCodeInvalidInput, "server: invalid temperature", err)
		}
		req.Temperature = &t
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, core.WrapDomainError("server", core.ErrorCodeInvalidInput, "server: invalid limit", err)
		}
		req.Limit = n
	}
	if err := validate.Struct("server", req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Msg("marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Error().Err(err).Msg("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	body := errorBody{Code: core.ErrorCodeInvalidInput, Message: err.Error()}
	if de := core.GetDomainError(err); de != nil {
		body.Code = de.Code
	}
	if status >= http.StatusInternalServerError {
		body.Message = http.StatusText(status)
	}
	body.Fields = validate.Fields(err)
	s.writeJSON(w, status, errorResponse{Error: body})
}
