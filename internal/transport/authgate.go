package transport

import (
	"context"
	"net/http"
	"os"

	"homequest-admin/pkg/logger"
)

// CredentialClearer wipes the stored session. Implemented by the
// credentials store.
type CredentialClearer interface {
	Clear() error
}

type authGate struct {
	next  Doer
	creds CredentialClearer
	log   *logger.Logger
}

// NewAuthGate wraps a Doer so that any 401/403 response clears the
// stored credentials before the error reaches the caller. The gate
// never redirects; the UI shell reacts to the now-absent session.
// Clearing an already-empty store is a no-op, so repeated 401s are
// harmless.
func NewAuthGate(next Doer, creds CredentialClearer, log *logger.Logger) Doer {
	if log == nil {
		log = logger.New(os.Stdout, logger.ERROR)
	}
	return &authGate{next: next, creds: creds, log: log}
}

func (g *authGate) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := g.next.Do(ctx, req)
	if resp != nil && (resp.Status == http.StatusUnauthorized || resp.Status == http.StatusForbidden) {
		g.log.Printf("transport: %s %s returned %d, clearing stored session", req.Method, req.Path, resp.Status)
		if clearErr := g.creds.Clear(); clearErr != nil {
			g.log.Errorf("transport: failed to clear credentials: %v", clearErr)
		}
	}
	return resp, err
}
