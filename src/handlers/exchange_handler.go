package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lojasmimi/trocas/backend/src/catalog"
	"github.com/lojasmimi/trocas/backend/src/config"
	"github.com/lojasmimi/trocas/backend/src/forms"
	"github.com/lojasmimi/trocas/backend/src/ledger"
	"github.com/lojasmimi/trocas/backend/src/logger"
	"github.com/lojasmimi/trocas/backend/src/models"
	"github.com/lojasmimi/trocas/backend/src/services"
	"github.com/lojasmimi/trocas/backend/src/utils"
	"github.com/lojasmimi/trocas/backend/src/validation"
)

type ExchangeHandler struct {
	exchangeService services.ExchangeService
}

func NewExchangeHandler(service services.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: service}
}

type addItemRequest struct {
	Barcode  string `json:"barcode"`
	Quantity string `json:"quantity"`
}

type ledgerResponse struct {
	Items                 []models.ExchangeItem `json:"items"`
	ItemCount             int                   `json:"item_count"`
	DistinctSupplierCount int                   `json:"distinct_supplier_count"`
}

func isValidationError(err error) bool {
	return errors.Is(err, validation.ErrBarcodeEmpty) ||
		errors.Is(err, validation.ErrBarcodeNotNumeric) ||
		errors.Is(err, validation.ErrBarcodeTooLong) ||
		errors.Is(err, validation.ErrQuantityNotANumber) ||
		errors.Is(err, validation.ErrQuantityNotPositive)
}

// HandleAddItem is the single-entry flow: one barcode, one quantity,
// resolved and merged into the session ledger.
func (h *ExchangeHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()

	item, err := h.exchangeService.AddItem(r.Context(), session.Ledger, req.Barcode, req.Quantity)
	if err != nil {
		switch {
		case isValidationError(err):
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, catalog.ErrNoSupplierLinked):
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, catalog.ErrCatalogUnavailable):
			utils.SendJSONError(w, "catalog service is unavailable, try again later", http.StatusBadGateway)
		default:
			logger.L.Error("Internal error adding exchange item", "sessionID", session.ID, "error", err)
			utils.SendJSONError(w, "an internal error occurred while adding the item", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(item); err != nil {
		logger.L.Error("Error encoding JSON response for added item", "sessionID", session.ID, "error", err)
	}
}

// HandleRemoveLastItem undoes the most recently added ledger entry.
func (h *ExchangeHandler) HandleRemoveLastItem(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()

	removed, err := h.exchangeService.RemoveLastItem(session.Ledger)
	if err != nil {
		if errors.Is(err, ledger.ErrEmptyLedger) {
			utils.SendJSONError(w, "no items to remove", http.StatusNotFound)
			return
		}
		logger.L.Error("Internal error removing last item", "sessionID", session.ID, "error", err)
		utils.SendJSONError(w, "an internal error occurred while removing the item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(removed); err != nil {
		logger.L.Error("Error encoding JSON response for removed item", "sessionID", session.ID, "error", err)
	}
}

// HandleGetItems returns the ledger snapshot with ETag support.
func (h *ExchangeHandler) HandleGetItems(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	session.Mu.Lock()
	response := ledgerResponse{
		Items:                 session.Ledger.Snapshot(),
		ItemCount:             session.Ledger.Len(),
		DistinctSupplierCount: session.Ledger.DistinctSupplierCount(),
	}
	session.Mu.Unlock()

	w.Header().Set("Cache-Control", "no-cache, private")
	if currentETag, err := utils.GenerateETag(response); err == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else if err != nil {
		logger.L.Warn("Proceeding without ETag for ledger snapshot", "sessionID", session.ID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.L.Error("Error encoding JSON response for ledger snapshot", "sessionID", session.ID, "error", err)
	}
}

// HandleBatchUpload processes a batch file upload: parse, validate and
// resolve every row, merge successes into the session ledger as they are in
// the report, and return the full report including per-row failures.
func (h *ExchangeHandler) HandleBatchUpload(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "sessionID", session.ID, "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("failed to parse form or request too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		utils.SendJSONError(w, "failed to retrieve file from request, ensure the 'file' field is used", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		utils.SendJSONError(w, fmt.Sprintf("file too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateClientContentType(fileHeader.Header.Get("Content-Type")); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := validation.ValidateFileContentByMagicBytes(file); err != nil {
		logger.L.Warn("Batch file content validation failed", "sessionID", session.ID, "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger.L.Info("Processing batch upload", "sessionID", session.ID, "filename", fileHeader.Filename)

	session.Mu.Lock()
	report, err := h.exchangeService.ProcessBatchFile(r.Context(), session.Ledger, file, fileHeader.Filename)
	session.Mu.Unlock()
	if err != nil {
		if errors.Is(err, services.ErrParsingFailed) {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.L.Error("Internal error processing batch upload", "sessionID", session.ID, "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, "an internal error occurred while processing the batch file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.L.Error("Error encoding JSON response for batch report", "sessionID", session.ID, "error", err)
	}
}

// HandleBatchTemplate serves the blank batch workbook download.
func (h *ExchangeHandler) HandleBatchTemplate(w http.ResponseWriter, r *http.Request) {
	buf, err := h.exchangeService.BatchTemplate()
	if err != nil {
		logger.L.Error("Failed to build batch template", "error", err)
		utils.SendJSONError(w, "failed to build the batch template", http.StatusInternalServerError)
		return
	}
	sendWorkbook(w, "MODELO_LOTE_TROCAS.xlsx", buf.Bytes())
}

// HandleRenderForm renders the current ledger into the exchange form and
// serves it as a download. The ledger is not modified.
func (h *ExchangeHandler) HandleRenderForm(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	meta := models.FormMetadata{
		BoxNumber:   r.URL.Query().Get("box"),
		Responsible: r.URL.Query().Get("responsible"),
	}

	session.Mu.Lock()
	buf, err := h.exchangeService.RenderForm(session.Ledger, meta)
	session.Mu.Unlock()
	if err != nil {
		if errors.Is(err, forms.ErrTemplateLoad) {
			logger.L.Error("Exchange form template unavailable", "sessionID", session.ID, "error", err)
			utils.SendJSONError(w, "exchange form template is unavailable", http.StatusInternalServerError)
			return
		}
		logger.L.Error("Failed to render exchange form", "sessionID", session.ID, "error", err)
		utils.SendJSONError(w, "failed to render the exchange form", http.StatusInternalServerError)
		return
	}

	sendWorkbook(w, "FORMULARIO_TROCA.xlsx", buf.Bytes())
}

func sendWorkbook(w http.ResponseWriter, filename string, content []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(content)))
	if _, err := w.Write(content); err != nil {
		logger.L.Error("Error writing workbook response", "filename", filename, "error", err)
	}
}
