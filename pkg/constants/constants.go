// Package constants defines system-wide constants for the MRM Governance Service.
// This package provides type-safe constant definitions used across all modules.
package constants

import "time"

// ServiceName is the canonical name used for tracing, metrics, and logging.
const ServiceName = "mrm-service"

// ================================================================================
// Log Level Constants
// ================================================================================

// LogLevel represents the severity of a log entry
type LogLevel int

const (
	// LogLevelDebug is for verbose diagnostic output
	LogLevelDebug LogLevel = iota

	// LogLevelInfo is for routine operational messages
	LogLevelInfo

	// LogLevelWarn is for recoverable anomalies
	LogLevelWarn

	// LogLevelError is for failures that affect a single operation
	LogLevelError

	// LogLevelFatal is for unrecoverable failures that terminate the process
	LogLevelFatal
)

// ================================================================================
// Error Code Constants
// ================================================================================

// ErrorCode identifies a class of application error
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates a malformed or incomplete client request
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeNotFound indicates the referenced model or record does not exist
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeDuplicateID indicates an identifier collision on registration
	ErrCodeDuplicateID ErrorCode = "duplicate_id"

	// ErrCodeInvalidRubric indicates a rubric that fails structural validation
	ErrCodeInvalidRubric ErrorCode = "invalid_rubric"

	// ErrCodePersistence indicates an underlying storage failure
	ErrCodePersistence ErrorCode = "persistence_failure"

	// ErrCodeUnauthorized indicates missing or invalid credentials
	ErrCodeUnauthorized ErrorCode = "unauthorized"

	// ErrCodeForbidden indicates valid credentials without the required role
	ErrCodeForbidden ErrorCode = "forbidden"

	// ErrCodeInternal indicates an unexpected server-side failure
	ErrCodeInternal ErrorCode = "internal_error"
)

// ================================================================================
// Context Key Constants
// ================================================================================

// ContextKey is the type used for values stored on a request context
type ContextKey string

const (
	// ContextKeyRequestID carries the per-request correlation identifier
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTraceID carries the distributed trace identifier
	ContextKeyTraceID ContextKey = "trace_id"

	// ContextKeyActor carries the authenticated principal performing the request
	ContextKeyActor ContextKey = "actor"
)

// ================================================================================
// Audit Event Type Constants
// ================================================================================

// AuditEventType classifies entries in the governance audit trail
type AuditEventType string

const (
	// AuditEventModelRegistered records a new model entering the inventory
	AuditEventModelRegistered AuditEventType = "model.registered"

	// AuditEventTieringRun records a risk-tiering assessment run
	AuditEventTieringRun AuditEventType = "tiering.run"

	// AuditEventRubricReplaced records an authorized rubric replacement
	AuditEventRubricReplaced AuditEventType = "rubric.replaced"

	// AuditEventExportRun records an evidence-bundle export run
	AuditEventExportRun AuditEventType = "export.run"
)

// ================================================================================
// Reserved Rubric Factor Constants
// ================================================================================

const (
	// FactorModelType is the reserved weight name scored from the model's type
	// rather than from a questionnaire attribute.
	FactorModelType = "model_type_factor"

	// ScoreTableModelType is the score-table key the reserved factor resolves to.
	ScoreTableModelType = "model_type"
)

// ================================================================================
// Default Constants
// ================================================================================

const (
	// DefaultHTTPPort is the default HTTP listen port
	DefaultHTTPPort = 8080

	// DefaultShutdownTimeout bounds graceful shutdown
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultLatestTieringTTL bounds staleness of the latest-tiering cache entry
	DefaultLatestTieringTTL = 5 * time.Minute
)

// RubricEditorRole is the JWT role claim required to replace the active rubric.
const RubricEditorRole = "risk-lead"
