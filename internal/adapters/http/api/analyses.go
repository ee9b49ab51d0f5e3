package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/cambios/internal/adapters/export"
	service "github.com/okian/cambios/internal/app"
	"github.com/okian/cambios/pkg/logger"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// AnalysesHandler serves the analysis session routes.
type AnalysesHandler struct {
	deps      Dependencies
	logger    logger.Logger
	maxUpload int64
}

// NewAnalysesHandler creates a handler that accepts uploads up to maxUpload bytes.
func NewAnalysesHandler(deps Dependencies, log logger.Logger, maxUpload int64) *AnalysesHandler {
	return &AnalysesHandler{deps: deps, logger: log, maxUpload: maxUpload}
}

// HandleCreate handles POST /analyses. It accepts a multipart upload (field "file",
// optional "page") or a JSON body with already extracted pages.
func (h *AnalysesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_analysis"
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var (
		req service.ScanRequest
		err error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		req, err = h.readUpload(r)
	} else {
		err = decodeJSON(r.Body, &req)
	}
	if err != nil {
		fail(r.Context(), h.logger, w, WrapKind(op, ErrBadRequest, err))
		return
	}

	a, err := h.deps.Scan(r.Context(), req)
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	w.Header().Set("Location", "/analyses/"+a.ID)
	writeJSON(w, http.StatusCreated, a)
}

func (h *AnalysesHandler) readUpload(r *http.Request) (service.ScanRequest, error) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return service.ScanRequest{}, uploadError(err)
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		return service.ScanRequest{}, errors.New(`missing multipart field "file"`)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return service.ScanRequest{}, uploadError(err)
	}
	pages, err := service.ReadDocument(hdr.Filename, data)
	if err != nil {
		return service.ScanRequest{}, err
	}

	req := service.ScanRequest{Source: hdr.Filename, Pages: pages}
	if v := strings.TrimSpace(r.FormValue("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return service.ScanRequest{}, errors.New("page must be a positive integer")
		}
		req.Page = page
	}
	return req, nil
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return NewKind("api.upload", ErrTooLarge)
	}
	return err
}

func decodeJSON(body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return uploadError(err)
	}
	return nil
}

// HandleGet handles GET /analyses/{id}.
func (h *AnalysesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.deps.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap("api.get_analysis", err))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleDelete handles DELETE /analyses/{id}.
func (h *AnalysesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Delete(r.Context(), r.PathValue("id")); err != nil {
		fail(r.Context(), h.logger, w, Wrap("api.delete_analysis", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleImpact handles POST /analyses/{id}/impact with the user's team assignments.
func (h *AnalysesHandler) HandleImpact(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate_impact"
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var req service.EvaluateRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		fail(r.Context(), h.logger, w, WrapKind(op, ErrBadRequest, err))
		return
	}
	report, err := h.deps.Evaluate(r.Context(), r.PathValue("id"), req)
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleExportXLSX handles GET /analyses/{id}/export.xlsx.
func (h *AnalysesHandler) HandleExportXLSX(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_xlsx"
	a, err := h.deps.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, a); err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	attach(w, contentTypeXLSX, "cambios-"+a.ID+".xlsx", buf.Bytes())
}

// HandleExportCSV handles GET /analyses/{id}/export.csv. It needs an impact report.
func (h *AnalysesHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_csv"
	a, err := h.deps.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	if a.Report == nil {
		fail(r.Context(), h.logger, w, NewKind(op, ErrNotEvaluated))
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, *a.Report); err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	attach(w, contentTypeCSV, "cambios-"+a.ID+".csv", buf.Bytes())
}

// HandleText handles GET /analyses/{id}/text: the scanned page with accents transliterated.
func (h *AnalysesHandler) HandleText(w http.ResponseWriter, r *http.Request) {
	const op = "api.page_text"
	a, err := h.deps.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	var buf bytes.Buffer
	if err := export.WriteText(&buf, a); err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func attach(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
