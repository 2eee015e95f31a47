package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andresmx/sentimsg/internal/application"
	appai "github.com/andresmx/sentimsg/internal/application/ai"
	"github.com/andresmx/sentimsg/internal/application/analysis"
	"github.com/andresmx/sentimsg/internal/domain/messages"
	"github.com/andresmx/sentimsg/internal/infra/httpserver"
	"github.com/andresmx/sentimsg/internal/infra/xmldoc"
)

const ingestDoc = `<solicitud_analisis>
  <diccionario>
    <sentimientos_positivos><palabra>bueno</palabra></sentimientos_positivos>
    <sentimientos_negativos><palabra>malo</palabra></sentimientos_negativos>
    <empresas_analizar>
      <empresa>
        <nombre>Empresa_X</nombre>
        <servicio nombre="soporte"><alias>atencion</alias></servicio>
      </empresa>
    </empresas_analizar>
  </diccionario>
  <lista_mensajes>
    <mensaje>Lugar y fecha: Centro, 05/03/2024 14:30Usuario: ana Red social: Twitter la atencion de Empresa_X fue bueno</mensaje>
    <mensaje>mensaje sin marcadores</mensaje>
  </lista_mensajes>
</solicitud_analisis>`

// stubRepo is a minimal in-memory Repository for handler tests.
type stubRepo struct {
	mu   sync.Mutex
	msgs []messages.Message
}

func (r *stubRepo) Save(_ context.Context, m *messages.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = int64(len(r.msgs) + 1)
	r.msgs = append(r.msgs, *m)
	return nil
}

func (r *stubRepo) CountBySentiment(_ context.Context, f messages.Filter) (map[messages.Sentiment]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[messages.Sentiment]int)
	for _, m := range r.msgs {
		if f.Company != "" && m.Company != f.Company {
			continue
		}
		if f.Service != "" && m.Service != f.Service {
			continue
		}
		out[m.Sentiment]++
	}
	return out, nil
}

func (r *stubRepo) Distinct(_ context.Context, field messages.Field, f messages.Filter) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, m := range r.msgs {
		v := m.Company
		if field == messages.FieldService {
			if m.Company != f.Company {
				continue
			}
			v = m.Service
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubRepo) EarliestTimestamp(_ context.Context) (time.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return time.Time{}, false, nil
	}
	min := r.msgs[0].Timestamp
	for _, m := range r.msgs[1:] {
		if m.Timestamp.Before(min) {
			min = m.Timestamp
		}
	}
	return min, true, nil
}

func (r *stubRepo) GroupedCounts(_ context.Context) ([]messages.GroupCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	type key struct {
		c, s string
		sent messages.Sentiment
	}
	idx := make(map[key]int)
	var out []messages.GroupCount
	for _, m := range r.msgs {
		k := key{m.Company, m.Service, m.Sentiment}
		if i, ok := idx[k]; ok {
			out[i].Count++
			continue
		}
		idx[k] = len(out)
		out = append(out, messages.GroupCount{Company: m.Company, Service: m.Service, Sentiment: m.Sentiment, Count: 1})
	}
	return out, nil
}

func newTestRouter() (http.Handler, *stubRepo) {
	repo := &stubRepo{}
	svc := &analysis.Service{
		Repo:  repo,
		Clock: application.SystemClock{},
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return httpserver.NewRouter(svc, appai.NewService(nil), 1<<20), repo
}

func TestAnalyzeRawBody(t *testing.T) {
	router, repo := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/analizar", strings.NewReader(ingestDoc))
	req.Header.Set("Content-Type", "application/xml")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var ack struct {
		Status   string `json:"status"`
		BatchID  string `json:"batch_id"`
		Ingested int    `json:"ingested"`
		Skipped  int    `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	require.Equal(t, "ok", ack.Status)
	require.NotEmpty(t, ack.BatchID)
	require.Equal(t, 1, ack.Ingested)
	require.Equal(t, 1, ack.Skipped)

	require.Len(t, repo.msgs, 1)
	require.Equal(t, "Empresa_X", repo.msgs[0].Company)
	require.Equal(t, "soporte", repo.msgs[0].Service)
	require.Equal(t, messages.SentimentPositive, repo.msgs[0].Sentiment)
}

func TestAnalyzeMultipart(t *testing.T) {
	router, repo := newTestRouter()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("archivo", "analisis.xml")
	require.NoError(t, err)
	_, err = fw.Write([]byte(ingestDoc))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analizar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.msgs, 1)
}

func TestAnalyzeMalformedDocument(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/analizar", strings.NewReader("<oops>"))
	req.Header.Set("Content-Type", "application/xml")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeMissingFileField(t *testing.T) {
	router, _ := newTestRouter()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("otro", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analizar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportEmptyStore(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/respuesta", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/xml", rec.Header().Get("Content-Type"))

	var list xmldoc.ResponseList
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Responses, 1)
	require.Equal(t, "sin_fecha", list.Responses[0].Date)
	require.Equal(t, xmldoc.CountBlock{}, list.Responses[0].Messages)
}

func TestIngestThenReport(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/analizar", strings.NewReader(ingestDoc))
	req.Header.Set("Content-Type", "application/xml")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/respuesta", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list xmldoc.ResponseList
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &list))
	resp := list.Responses[0]
	require.Equal(t, "2024-03-05", resp.Date)
	require.Equal(t, xmldoc.CountBlock{Total: 1, Positive: 1}, resp.Messages)
	require.Len(t, resp.Analysis.Companies, 1)
	require.Equal(t, "Empresa_X", resp.Analysis.Companies[0].Name)
	require.Equal(t, "soporte", resp.Analysis.Companies[0].Services.Services[0].Name)
}

func TestCompaniesEndpoint(t *testing.T) {
	router, repo := newTestRouter()
	repo.msgs = []messages.Message{
		{Company: "Empresa_X", Service: "soporte", Sentiment: messages.SentimentPositive},
		{Company: "Banco_Y", Service: "unknown", Sentiment: messages.SentimentNeutral},
	}

	req := httptest.NewRequest(http.MethodGet, "/empresas", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Empresas []string `json:"empresas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, []string{"Empresa_X", "Banco_Y"}, resp.Empresas)
}

func TestSummaryDisabled(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/resumen", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
