package audit

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"

	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/internal/domain/service"
)

// SignAuditEvent computes the base64 HMAC-SHA256 signature over the JSON
// form of an event. The Signature field itself is excluded from the signed
// payload so the stored signature can be verified later.
func SignAuditEvent(event *models.AuditEvent, secretKey string) (string, error) {
	unsigned := *event
	unsigned.Signature = ""

	payload, err := json.Marshal(&unsigned)
	if err != nil {
		return "", err
	}

	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write(payload)
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

// VerifyAuditEvent reports whether an event's signature matches its content.
func VerifyAuditEvent(event *models.AuditEvent, secretKey string) bool {
	expected, err := SignAuditEvent(event, secretKey)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(event.Signature))
}

// signingAuditService signs every event before handing it to the wrapped
// sink.
type signingAuditService struct {
	next service.AuditService
	key  string
}

// NewSigningAuditService wraps an AuditService so every logged event carries
// an HMAC-SHA256 signature.
func NewSigningAuditService(next service.AuditService, secretKey string) service.AuditService {
	return &signingAuditService{next: next, key: secretKey}
}

func (s *signingAuditService) LogEvent(ctx context.Context, event *models.AuditEvent) error {
	signature, err := SignAuditEvent(event, s.key)
	if err != nil {
		return err
	}
	event.Signature = signature
	return s.next.LogEvent(ctx, event)
}
