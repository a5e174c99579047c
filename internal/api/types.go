package api

import (
	"time"

	"github.com/nauticalab/envschema/internal/auth"
	"github.com/nauticalab/envschema/internal/validation"
	"github.com/nauticalab/envschema/pkg/schema"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// VersionResponse represents the version information
type VersionResponse struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion,omitempty"`
}

// SchemaResponse describes the schema served by the API
type SchemaResponse struct {
	Fields   []string `json:"fields"`
	Rejects  bool     `json:"rejectsUnused"`
	Template string   `json:"template"`
}

// CheckResponse is the outcome of checking one snapshot
type CheckResponse struct {
	Valid    bool                           `json:"valid"`
	Errors   []validation.ValidationError   `json:"errors"`
	Warnings []validation.ValidationWarning `json:"warnings"`
	Log      []schema.Line                  `json:"log"`
	// Values is only filled when requested, with secrets redacted
	Values schema.Values `json:"values,omitempty"`
}

// WhoAmIResponse represents the response for the WhoAmI endpoint
type WhoAmIResponse struct {
	auth.Identity
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
