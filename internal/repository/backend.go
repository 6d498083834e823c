package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
)

// Backend is the subset of infra.BackendClient the repositories need.
type Backend interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, query url.Values, out any) error
	Download(ctx context.Context, path string, query url.Values) ([]byte, string, error)
}

var _ Backend = (*infra.BackendClient)(nil)

func chemin(format string, id int64) string {
	return fmt.Sprintf(format, id)
}

// estIntrouvable reports a backend 404.
func estIntrouvable(err error) bool {
	var berr *infra.BackendError
	return errors.As(err, &berr) && berr.Status == http.StatusNotFound
}
