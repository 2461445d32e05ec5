package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// SubscribeEventsParams are the query parameters of GET /events.
type SubscribeEventsParams struct {
	Types *[]string `form:"types,omitempty" json:"types,omitempty"`
}

// GetMermaidParams are the query parameters of GET /tree/mermaid.
type GetMermaidParams struct {
	Kind *string `form:"kind,omitempty" json:"kind,omitempty"`
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (POST /build)
	Build(w http.ResponseWriter, r *http.Request)
	// (POST /traverse/{kind})
	Traverse(w http.ResponseWriter, r *http.Request, kind string)
	// (GET /tree)
	GetTree(w http.ResponseWriter, r *http.Request)
	// (DELETE /tree)
	ClearTree(w http.ResponseWriter, r *http.Request)
	// (GET /tree/mermaid)
	GetMermaid(w http.ResponseWriter, r *http.Request, params GetMermaidParams)
	// (GET /events)
	SubscribeEvents(w http.ResponseWriter, r *http.Request, params SubscribeEventsParams)
	// (GET /health)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (GET /info)
	GetInfo(w http.ResponseWriter, r *http.Request)
}

// paramWrapper binds path and query parameters before calling the handler.
type paramWrapper struct {
	handler ServerInterface
}

func (pw *paramWrapper) Traverse(w http.ResponseWriter, r *http.Request) {
	var kind string
	err := runtime.BindStyledParameterWithOptions("simple", "kind", chi.URLParam(r, "kind"), &kind,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter kind: %v", err), http.StatusBadRequest)
		return
	}
	pw.handler.Traverse(w, r, kind)
}

func (pw *paramWrapper) GetMermaid(w http.ResponseWriter, r *http.Request) {
	var params GetMermaidParams
	if err := runtime.BindQueryParameter("form", true, false, "kind", r.URL.Query(), &params.Kind); err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter kind: %v", err), http.StatusBadRequest)
		return
	}
	pw.handler.GetMermaid(w, r, params)
}

func (pw *paramWrapper) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	var params SubscribeEventsParams
	if err := runtime.BindQueryParameter("form", false, false, "types", r.URL.Query(), &params.Types); err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter types: %v", err), http.StatusBadRequest)
		return
	}
	pw.handler.SubscribeEvents(w, r, params)
}

// HandlerFromMux registers every operation of si on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	pw := &paramWrapper{handler: si}

	r.Post("/build", si.Build)
	r.Post("/traverse/{kind}", pw.Traverse)
	r.Get("/tree", si.GetTree)
	r.Delete("/tree", si.ClearTree)
	r.Get("/tree/mermaid", pw.GetMermaid)
	r.Get("/events", pw.SubscribeEvents)
	r.Get("/health", si.GetHealth)
	r.Get("/info", si.GetInfo)

	return r
}
