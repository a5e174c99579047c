package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/nauticalab/envschema/internal/auth"
	"github.com/nauticalab/envschema/internal/k8s"
	"github.com/nauticalab/envschema/internal/validation"
	"github.com/nauticalab/envschema/pkg/schema"
)

// MaxSnapshotBytes bounds the body of a check request.
const MaxSnapshotBytes = 1 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	// root is the schema snapshots are checked against
	root schema.Object
	// checker validates snapshots against root
	checker *validation.Checker
	// template is the help text served by /template
	template string
	// k8sClient reads cluster objects; nil disables the cluster endpoints
	k8sClient *k8s.Client
	// version is the application version
	version string
	// gitCommit is the git commit hash of the build
	gitCommit string
	// buildTime is the time when the application was built
	buildTime string
	// goVersion is the Go version used to build the application
	goVersion string
}

// NewHandler creates a new Handler instance. template defaults to the
// schema's own help text.
func NewHandler(root schema.Object, template string, k8sClient *k8s.Client, version, gitCommit, buildTime, goVersion string) *Handler {
	if template == "" {
		template = root.Template()
	}
	return &Handler{
		root:      root,
		checker:   validation.NewChecker(root),
		template:  template,
		k8sClient: k8sClient,
		version:   version,
		gitCommit: gitCommit,
		buildTime: buildTime,
		goVersion: goVersion,
	}
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Version handles GET /api/v1/version
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, VersionResponse{
		Version:   h.version,
		GitCommit: h.gitCommit,
		BuildTime: h.buildTime,
		GoVersion: h.goVersion,
	})
}

// Template handles GET /api/v1/template
// Returns the dotenv-style help text of the schema.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	respondText(w, http.StatusOK, h.template)
}

// Schema handles GET /api/v1/schema
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, SchemaResponse{
		Fields:   h.root.FieldNames(),
		Rejects:  h.root.Rejects(),
		Template: h.template,
	})
}

// Check handles POST /api/v1/check
// The body is a JSON object of strings. Invalid snapshots are reported with
// 200 and valid=false; only malformed requests fail.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxSnapshotBytes)

	var snapshot schema.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Snapshot exceeds %d bytes", tooLarge.Limit))
			return
		}
		respondBadRequest(w, "Body must be a JSON object of string values: "+err.Error())
		return
	}
	if snapshot == nil {
		respondBadRequest(w, "Body must be a JSON object of string values")
		return
	}

	h.respondCheck(w, r, snapshot)
}

// CheckConfigMap handles GET /api/v1/check/configmaps/{namespace}/{name}
// Checks the data of a ConfigMap in the cluster.
func (h *Handler) CheckConfigMap(w http.ResponseWriter, r *http.Request) {
	if h.k8sClient == nil {
		respondNotFound(w, "Cluster access is not configured")
		return
	}

	ref := k8s.ObjectRef{
		Namespace: chi.URLParam(r, "namespace"),
		Name:      chi.URLParam(r, "name"),
	}
	if ref.Namespace == "" || ref.Name == "" {
		respondBadRequest(w, "Missing namespace or configmap name")
		return
	}

	snapshot, err := h.k8sClient.ConfigMapSnapshot(r.Context(), ref)
	if err != nil {
		log.Printf("Error reading configmap %s: %v", ref, err)
		if k8serrors.IsNotFound(err) {
			respondNotFound(w, fmt.Sprintf("ConfigMap %s not found", ref))
			return
		}
		respondError(w, http.StatusBadGateway, "Failed to read configmap")
		return
	}

	h.respondCheck(w, r, snapshot)
}

func (h *Handler) respondCheck(w http.ResponseWriter, r *http.Request, snapshot schema.Snapshot) {
	result := h.checker.Check(snapshot)

	resp := CheckResponse{
		Valid:    result.IsValid,
		Errors:   result.Errors,
		Warnings: result.Warnings,
		Log:      result.Log,
	}
	if withValues, _ := strconv.ParseBool(r.URL.Query().Get("values")); withValues && result.IsValid {
		resp.Values = validation.Printable(h.root.Redact(result.Values))
	}

	respondSuccess(w, resp)
}

// WhoAmI handles GET /api/v1/auth/whoami
// Returns the identity of the authenticated caller
func (h *Handler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.GetIdentityFromContext(r.Context())
	if !ok {
		respondUnauthorized(w, "Not authenticated")
		return
	}

	respondSuccess(w, WhoAmIResponse{
		Identity: *identity,
	})
}
