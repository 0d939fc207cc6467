/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"context"
	"net/http"
	"time"

	"campaign-draft-sync-go/internal/engine"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// DraftService exposes the draft engine over HTTP
type DraftService struct {
	engine *engine.Engine
}

func NewDraftService(e *engine.Engine) *DraftService {
	return &DraftService{
		engine: e,
	}
}

func (s *DraftService) HealthCheck(ctx context.Context) error {
	return s.engine.Ping(ctx)
}

// Router registers every route of the draft API
func (s *DraftService) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", s.healthz)

	r.Route("/owners/{ownerId}", func(r chi.Router) {
		r.Get("/campaigns", s.listCampaigns)
		r.Get("/campaigns/stats", s.campaignStats)
		r.Post("/campaigns/{campaignId}/publish", s.publishCampaign)
		r.Post("/campaigns/{campaignId}/pause", s.pauseCampaign)
		r.Post("/campaigns/{campaignId}/resume", s.resumeCampaign)
		r.Post("/campaigns/{campaignId}/edit", s.editCampaign)

		r.Get("/drafts", s.listDrafts)
		r.Post("/drafts/import-legacy", s.importLegacyDraft)
		r.Put("/drafts/{draftKey}", s.saveDraft)
		r.Get("/drafts/{draftKey}", s.getDraft)
		r.Delete("/drafts/{draftKey}", s.clearDraft)
	})

	return r
}

func (s *DraftService) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.HealthCheck(r.Context()); err != nil {
		zap.L().Warn("Health check failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "remote store unreachable")
		return
	}
	writeMessage(w, http.StatusOK, "ok")
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		}
		if status >= http.StatusInternalServerError {
			zap.L().Error("HTTP request", fields...)
			return
		}
		zap.L().Debug("HTTP request", fields...)
	})
}
