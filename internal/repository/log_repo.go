package repository

import (
	"context"

	"github.com/satch9/app-caisse-compta-sub000/internal/dto"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"
)

type LogRepository interface {
	Lister(ctx context.Context, f dto.LogFilter) ([]model.LogSysteme, error)
	Filtres(ctx context.Context) (*model.FiltresLogs, error)
	// Supprimer deletes the given log entries and returns how many went.
	Supprimer(ctx context.Context, ids []int64) (int, error)
}

type logRepository struct{ api Backend }

func NewLogRepository(api Backend) LogRepository {
	return &logRepository{api: api}
}

func (r *logRepository) Lister(ctx context.Context, f dto.LogFilter) ([]model.LogSysteme, error) {
	list := []model.LogSysteme{}
	err := r.api.Get(ctx, "/logs", f.Query(), &list)
	return list, err
}

func (r *logRepository) Filtres(ctx context.Context) (*model.FiltresLogs, error) {
	var fl model.FiltresLogs
	if err := r.api.Get(ctx, "/logs/filtres", nil, &fl); err != nil {
		return nil, err
	}
	return &fl, nil
}

func (r *logRepository) Supprimer(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var res dto.SuppressionLogs
	if err := r.api.Post(ctx, "/logs/suppression", dto.SuppressionLogsRequest{IDs: ids}, &res); err != nil {
		return 0, err
	}
	return res.Supprimes, nil
}
