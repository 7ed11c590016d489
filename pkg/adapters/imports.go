package adapters

import (
	"github.com/de-tools/boxoffice-atlas/pkg/models/domain"
	"github.com/de-tools/boxoffice-atlas/pkg/models/store"
)

func MapStoreImportRunToDomain(r *store.ImportRun) *domain.ImportRun {
	if r == nil {
		return nil
	}

	return &domain.ImportRun{
		ID:           r.ID,
		Source:       r.Source,
		Status:       domain.ImportStatus(r.Status),
		RecordsCount: r.RecordsCount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Error:        r.Error,
	}
}

func MapStoreImportRunsToDomain(runs []*store.ImportRun) []*domain.ImportRun {
	res := make([]*domain.ImportRun, 0, len(runs))
	for _, r := range runs {
		res = append(res, MapStoreImportRunToDomain(r))
	}
	return res
}
