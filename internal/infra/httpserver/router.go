package httpserver

import (
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appai "github.com/bryanwahyu/osintmap/internal/application/ai"
	appfindings "github.com/bryanwahyu/osintmap/internal/application/findings"
	domai "github.com/bryanwahyu/osintmap/internal/domain/ai"
	domain "github.com/bryanwahyu/osintmap/internal/domain/findings"
	"github.com/bryanwahyu/osintmap/internal/logger"
	"github.com/bryanwahyu/osintmap/internal/middleware"
)

//go:embed index.html.tmpl
var indexTemplate string

var indexTmpl = template.Must(template.New("index").Parse(indexTemplate))

// ReportFilename is the attachment name offered by GET /export.
const ReportFilename = "osint_report.pdf"

// Options carries the optional pieces of the HTTP stack.
type Options struct {
	Log            *logger.Logger
	Metrics        *middleware.Metrics
	Limiter        *middleware.RateLimiter
	AllowedOrigins []string
	Checks         map[string]middleware.HealthChecker
	Readiness      middleware.HealthChecker
}

type Router struct {
	svc     *appfindings.Service
	aiSvc   *appai.Service
	log     *logger.Logger
	metrics *middleware.Metrics
}

// NewRouter mounts the findings endpoints. aiSvc may be nil.
func NewRouter(svc *appfindings.Service, aiSvc *appai.Service, opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	r := &Router{svc: svc, aiSvc: aiSvc, log: log.WithComponent("httpserver"), metrics: opts.Metrics}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Logging(log))
	if opts.Metrics != nil {
		mux.Use(opts.Metrics.Middleware)
	}
	if len(opts.AllowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{"Content-Disposition", "X-Artifact-URL", middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}
	if opts.Limiter != nil {
		mux.Use(middleware.RateLimit(opts.Limiter))
	}

	mux.Get("/health", middleware.HealthHandler(opts.Checks))
	mux.Get("/ready", middleware.ReadinessHandler(opts.Readiness))
	if opts.Metrics != nil {
		mux.Get("/metrics", opts.Metrics.Handler)
	}

	mux.Get("/", r.wrap(r.handleIndex))
	mux.Post("/collect", r.wrap(r.handleCollect))
	mux.Get("/findings", r.wrap(r.handleFindings))
	mux.Post("/delete", r.wrap(r.handleDelete))
	mux.Get("/heatmap", r.wrap(r.handleHeatmap))
	mux.Get("/export", r.wrap(r.handleExport))
	mux.Get("/stats", r.wrap(r.handleStats))
	mux.Post("/analyze", r.wrap(r.handleAnalyze))
	mux.Get("/analyze", r.wrap(r.handleAnalyzeList))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap is the single place where errors become status codes.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case domain.IsValidation(err):
			writeError(w, http.StatusBadRequest, validationMessage(err))
		case errors.Is(err, domain.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"status": "not_found"})
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "ai quota exceeded")
		case errors.Is(err, domai.ErrDisabled):
			writeError(w, http.StatusServiceUnavailable, domai.ErrDisabled.Error())
		default:
			r.log.Errorw("request failed",
				"path", req.URL.Path,
				"request_id", middleware.RequestIDFromContext(req.Context()),
				"error", err,
			)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

// validationMessage strips the offending value from wrapped sentinels.
func validationMessage(err error) string {
	for _, s := range []error{domain.ErrMissingInput, domain.ErrMissingID, domain.ErrInvalidTool} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}

// GET /
func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) error {
	tools := domain.Tools()
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = string(t)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return indexTmpl.Execute(w, map[string]any{"Tools": names})
}

// POST /collect
// Body: {"query": "...", "tool": "shodan"}
func (r *Router) handleCollect(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Query string `json:"query"`
		Tool  string `json:"tool"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return domain.ErrMissingInput
	}

	res, err := r.svc.Collect(req.Context(), appfindings.CollectCommand{
		Query: body.Query,
		Tool:  body.Tool,
	})
	if err != nil {
		return err
	}
	if r.metrics != nil {
		r.metrics.RecordCollection(res.Inserted)
	}

	return writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"inserted":  res.Inserted,
		"requested": res.Requested,
	})
}

// GET /findings?type=&source=&q=
func (r *Router) handleFindings(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	list, err := r.svc.List(req.Context(), domain.Filter{
		Type:   domain.Category(q.Get("type")),
		Source: q.Get("source"),
		Search: q.Get("q"),
	})
	if err != nil {
		return err
	}
	if list == nil {
		list = []domain.Finding{}
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /delete
// Body: {"id": 3}
func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ID *int64 `json:"id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.ID == nil {
		return domain.ErrMissingID
	}

	if err := r.svc.Delete(req.Context(), domain.FindingID(*body.ID)); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"deleted": 1,
	})
}

// GET /heatmap
func (r *Router) handleHeatmap(w http.ResponseWriter, req *http.Request) error {
	path, err := r.svc.Heatmap(req.Context())
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, req, path)
	return nil
}

// GET /export[?format=html]
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	if req.URL.Query().Get("format") == "html" {
		html, err := r.svc.ExportHTML(req.Context())
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err = w.Write(html)
		return err
	}

	res, err := r.svc.Export(req.Context())
	if err != nil {
		return err
	}
	if r.metrics != nil {
		r.metrics.RecordExport()
	}
	if res.ArtifactURL != "" {
		w.Header().Set("X-Artifact-URL", res.ArtifactURL)
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ReportFilename+`"`)
	http.ServeFile(w, req, res.Path)
	return nil
}

// GET /stats
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) error {
	st, err := r.svc.Stats(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, st)
}

// POST /analyze
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	if r.aiSvc == nil {
		return domai.ErrDisabled
	}
	rec, err := r.aiSvc.Analyze(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rec)
}

// GET /analyze?page=&page_size=
func (r *Router) handleAnalyzeList(w http.ResponseWriter, req *http.Request) error {
	if r.aiSvc == nil {
		return domai.ErrDisabled
	}
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.aiSvc.History(req.Context(), page, size)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, map[string]string{"error": msg})
}
