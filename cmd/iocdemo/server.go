package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dozm/ioc"
	"github.com/dozm/ioc/errorx"
)

type server struct {
	base *ioc.Container
	log  *zap.Logger
}

type serviceView struct {
	Service string `json:"service"`
	Type    string `json:"type"`
	Value   string `json:"value"`
}

func newServer(base *ioc.Container, log *zap.Logger) *server {
	return &server{base: base, log: log}
}

func (s *server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/layers", s.layers)
	r.Route("/services/{name}", func(r chi.Router) {
		r.Get("/", s.resolve)
		r.Get("/variants", s.variants)
	})
	return r
}

func (s *server) resolve(w http.ResponseWriter, req *http.Request) {
	id := ioc.ServiceVariant(chi.URLParam(req, "name"), req.URL.Query().Get("variant"))
	c := withRequestScope(s.base)

	inst, err := c.Resolve(req.Context(), id)
	if err != nil {
		s.writeError(w, req, id, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(id, inst))
}

func (s *server) variants(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")
	instances, err := ioc.ResolveVariants(req.Context(), withRequestScope(s.base), name)
	if err != nil {
		s.writeError(w, req, ioc.Service(name), err)
		return
	}

	views := make([]serviceView, 0, len(instances))
	for _, variant := range s.base.Variants(name) {
		if inst, ok := instances[variant]; ok {
			views = append(views, viewOf(ioc.ServiceVariant(name, variant), inst))
		}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *server) layers(w http.ResponseWriter, _ *http.Request) {
	layers := s.base.Layers()
	names := make([]string, 0, len(layers))
	for _, l := range layers {
		names = append(names, layerName(l))
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *server) writeError(w http.ResponseWriter, req *http.Request, id ioc.ServiceID, err error) {
	var notFound *errorx.ServiceNotFound
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	s.log.Error("resolve failed",
		zap.Stringer("service", id),
		zap.String("request_id", middleware.GetReqID(req.Context())),
		zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func viewOf(id ioc.ServiceID, inst *ioc.Instance) serviceView {
	v := serviceView{Service: id.String(), Value: formatValue(inst.Value())}
	if t := inst.Type(); t != nil {
		v.Type = t.String()
	}
	return v
}

func layerName(l ioc.Layer) string {
	if s, ok := l.(interface{ String() string }); ok {
		return s.String()
	}
	return l.Kind().String()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
