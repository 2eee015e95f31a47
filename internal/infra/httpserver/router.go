package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	appai "github.com/andresmx/sentimsg/internal/application/ai"
	"github.com/andresmx/sentimsg/internal/application/analysis"
	domai "github.com/andresmx/sentimsg/internal/domain/ai"
	"github.com/andresmx/sentimsg/internal/domain/messages"
	"github.com/andresmx/sentimsg/internal/infra/xmldoc"
	"github.com/andresmx/sentimsg/internal/middleware"
)

type Router struct {
	analysisSvc *analysis.Service
	aiSvc       *appai.Service
	maxUpload   int64
}

func NewRouter(analysisSvc *analysis.Service, aiSvc *appai.Service, maxUpload int64) http.Handler {
	r := &Router{analysisSvc: analysisSvc, aiSvc: aiSvc, maxUpload: maxUpload}
	mux := chi.NewRouter()

	mux.Post("/analizar", r.wrap(r.handleAnalyze))
	mux.Get("/respuesta", r.wrap(r.handleReport))
	mux.Get("/empresas", r.wrap(r.handleCompanies))
	mux.Get("/resumen", r.wrap(r.handleSummary))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if errors.Is(err, messages.ErrMalformedDocument) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(err, domai.ErrQuotaExceeded) {
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
				return
			}
			if errors.Is(err, domai.ErrDisabled) {
				http.Error(w, "ai summary is not configured", http.StatusServiceUnavailable)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /analizar
// Body: the analysis request document, either as multipart form field
// "archivo" or as a raw XML body.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	data, err := r.readDocument(w, req)
	if err != nil {
		return err
	}

	cmd, err := xmldoc.ParseAnalysisRequest(data)
	if err != nil {
		return err
	}

	res, err := r.analysisSvc.Ingest(req.Context(), cmd)
	if err != nil {
		return err
	}
	middleware.AddMessagesIngested(res.Ingested)
	middleware.AddMessagesSkipped(res.Skipped)

	resp := map[string]any{
		"status":       "ok",
		"batch_id":     res.BatchID,
		"received_at":  res.ReceivedAt,
		"ingested":     res.Ingested,
		"skipped":      res.Skipped,
		"artifact_url": res.ArtifactURL,
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}

// GET /respuesta
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
	body, err := r.reportXML(req)
	if err != nil {
		return err
	}
	middleware.IncrementReports()

	w.Header().Set("Content-Type", "application/xml")
	_, err = w.Write(body)
	return err
}

// GET /empresas
func (r *Router) handleCompanies(w http.ResponseWriter, req *http.Request) error {
	companies, err := r.analysisSvc.Companies(req.Context())
	if err != nil {
		return err
	}
	if companies == nil {
		companies = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{"empresas": companies})
}

// GET /resumen
// Builds the current report and asks the AI service for a prose summary.
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	body, err := r.reportXML(req)
	if err != nil {
		return err
	}

	summary, err := r.aiSvc.SummarizeReport(req.Context(), string(body))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]any{"summary": summary})
}

func (r *Router) reportXML(req *http.Request) ([]byte, error) {
	rep, err := r.analysisSvc.Report(req.Context())
	if err != nil {
		return nil, err
	}
	return xmldoc.EncodeResponseList(xmldoc.FromReport(rep))
}

// badRequest classifies a request-shape failure as malformed input so wrap
// maps it to HTTP 400.
func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", messages.ErrMalformedDocument, fmt.Sprintf(format, args...))
}

// readDocument extracts the ingest document bytes from either the multipart
// "archivo" field or the raw request body.
func (r *Router) readDocument(w http.ResponseWriter, req *http.Request) ([]byte, error) {
	ct := req.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "multipart/") {
		if err := req.ParseMultipartForm(r.maxUpload); err != nil {
			return nil, badRequest("parsing multipart form: %v", err)
		}
		f, hdr, err := req.FormFile("archivo")
		if err != nil {
			return nil, badRequest("missing file field %q", "archivo")
		}
		defer f.Close()
		if err := middleware.ValidateUpload(hdr.Header.Get("Content-Type"), hdr.Size, r.maxUpload); err != nil {
			return nil, badRequest("%v", err)
		}
		return io.ReadAll(f)
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, req.Body, r.maxUpload))
	if err != nil {
		return nil, badRequest("reading body: %v", err)
	}
	if err := middleware.ValidateUpload(ct, int64(len(data)), r.maxUpload); err != nil {
		return nil, badRequest("%v", err)
	}
	return data, nil
}
