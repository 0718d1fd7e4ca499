// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/survey-insights/middleware"
	"github.com/danielhkuo/survey-insights/models"
	"github.com/danielhkuo/survey-insights/sheet"
)

// Error bodies returned by the proxy. Existing pages match on these strings.
const (
	ProxyUpstreamError = "Failed to fetch from Google Sheets"
	ProxyNetworkError  = "Failed to fetch data from Google Sheets. Please try again later."
)

type SheetHandler struct {
	source sheet.Source
}

func NewSheetHandler(source sheet.Source) *SheetHandler {
	return &SheetHandler{source: source}
}

// GetSheetData handles GET /api/get-sheet-data
// Every request fetches the sheet once and relays the CSV verbatim.
func (h *SheetHandler) GetSheetData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	middleware.NoCache(w)

	body, err := h.source.Fetch(r.Context())
	if err != nil {
		if status := sheet.StatusCode(err); status != 0 {
			slog.Error("sheet upstream returned an error", "status", status)
			middleware.JSONResponse(w, status, models.ProxyError{Error: ProxyUpstreamError})
			return
		}
		slog.Error("failed to fetch sheet", "error", err)
		middleware.JSONResponse(w, http.StatusInternalServerError, models.ProxyError{Error: ProxyNetworkError})
		return
	}

	middleware.CSVResponse(w, http.StatusOK, body)
}
