package httpapp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/happythoughts/happythoughts/docs" // swagger docs

	"github.com/happythoughts/happythoughts/internal/model"
	"github.com/happythoughts/happythoughts/internal/store"
)

// maxBodyBytes caps create request bodies at 100 KiB.
const maxBodyBytes = 100 << 10

// routes is the public route listing served at GET /. Keep it in step with
// the switch in ServeHTTP.
var routes = []model.Route{
	{Path: "/", Method: "get"},
	{Path: "/thoughts", Method: "get"},
	{Path: "/thoughts", Method: "post"},
	{Path: "/thoughts/:id/like", Method: "patch"},
	{Path: "/healthz", Method: "get"},
}

// Routes returns a copy of the route listing.
func Routes() []model.Route {
	out := make([]model.Route, len(routes))
	copy(out, routes)
	return out
}

type Server struct {
	store     store.Store
	feedLimit int
	log       logrus.FieldLogger
}

func NewServer(st store.Store, feedLimit int, logger logrus.FieldLogger) *Server {
	return &Server{store: st, feedLimit: feedLimit, log: logger}
}

// Handler wraps the router with permissive CORS and request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(cors.AllowAll().Handler(s))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/swagger/") {
		httpSwagger.WrapHandler.ServeHTTP(w, r)
		return
	}

	segments := splitPath(r.URL.Path)
	switch {
	case len(segments) == 0:
		if r.Method == http.MethodGet {
			s.handleRoutes(w, r)
			return
		}
		methodNotAllowed(w)
		return
	case len(segments) == 1 && segments[0] == "thoughts":
		if r.Method == http.MethodGet {
			s.handleListThoughts(w, r)
			return
		}
		if r.Method == http.MethodPost {
			s.handleCreateThought(w, r)
			return
		}
		methodNotAllowed(w)
		return
	case len(segments) == 3 && segments[0] == "thoughts" && segments[1] != "" && segments[2] == "like":
		if r.Method == http.MethodPatch {
			s.handleLikeThought(w, r, segments[1])
			return
		}
		methodNotAllowed(w)
		return
	case len(segments) == 1 && segments[0] == "healthz":
		if r.Method == http.MethodGet {
			s.handleHealth(w, r)
			return
		}
		methodNotAllowed(w)
		return
	}

	notFound(w)
}

// handleRoutes godoc
//
//	@Summary		List routes
//	@Description	List the routes this API serves.
//	@Tags			Meta
//	@Produce		json
//	@Success		200	{array}	model.Route
//	@Router			/ [get]
func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, routes)
}

// handleListThoughts godoc
//
//	@Summary		Recent thoughts
//	@Description	Get the 20 most recent thoughts, newest first.
//	@Tags			Thoughts
//	@Produce		json
//	@Success		200	{array}		model.Thought
//	@Failure		500	{object}	map[string]string	"Failed to fetch messages"
//	@Router			/thoughts [get]
func (s *Server) handleListThoughts(w http.ResponseWriter, r *http.Request) {
	thoughts, err := s.store.ListRecentThoughts(r.Context(), s.feedLimit)
	if err != nil {
		s.log.WithError(err).Error("list thoughts")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to fetch messages"})
		return
	}
	if thoughts == nil {
		thoughts = []model.Thought{}
	}
	writeJSON(w, http.StatusOK, thoughts)
}

// handleCreateThought godoc
//
//	@Summary		Post a thought
//	@Description	Create a thought. Text must be 6 to 140 characters. Id, createdAt and likes are assigned by the server.
//	@Tags			Thoughts
//	@Accept			json
//	@Produce		json
//	@Param			thought	body		object{text=string}	true	"Thought text"
//	@Success		201		{object}	model.Thought
//	@Failure		400		{object}	map[string]interface{}	"Could not save thought"
//	@Router			/thoughts [post]
func (s *Server) handleCreateThought(w http.ResponseWriter, r *http.Request) {
	text := readText(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	thought, err := s.store.CreateThought(r.Context(), text)
	if err != nil {
		s.log.WithError(err).Warn("create thought")
		var verr *store.ValidationError
		var detail any = err.Error()
		if errors.As(err, &verr) {
			detail = verr.Fields
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Could not save thought",
			"error":   detail,
		})
		return
	}
	writeJSON(w, http.StatusCreated, thought)
}

// handleLikeThought godoc
//
//	@Summary		Like a thought
//	@Description	Increment the like counter of a thought by one.
//	@Tags			Thoughts
//	@Produce		json
//	@Param			id	path		string	true	"Thought ID"
//	@Success		200	{object}	map[string]string	"Thought liked successfully"
//	@Failure		400	{object}	map[string]string	"Like not successfull"
//	@Failure		404	{object}	map[string]string	"Thought not found"
//	@Router			/thoughts/{id}/like [patch]
func (s *Server) handleLikeThought(w http.ResponseWriter, r *http.Request, id string) {
	_, err := s.store.LikeThought(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log.WithField("id", id).Info("like: thought not found")
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Thought not found"})
			return
		}
		s.log.WithError(err).WithField("id", id).Warn("like thought")
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Like not successfull",
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Thought liked successfully"})
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Report whether the thought store is reachable.
//	@Tags			Meta
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		503	{object}	map[string]string
//	@Router			/healthz [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.WithError(err).Error("store ping")
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// readText pulls the text field out of a create request. Anything that is
// not a JSON object reads as an empty body, and scalar values are cast to
// their string form the way the document schema casts them.
func readText(body io.ReadCloser) string {
	defer body.Close()
	var req struct {
		Text any `json:"text"`
	}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return ""
	}
	switch v := req.Text.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Infof("%s %s", r.Method, r.URL.Path)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, errors.New("not found"))
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
