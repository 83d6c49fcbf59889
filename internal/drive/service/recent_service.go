package service

import (
	"context"
	"fmt"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/domain"
)

const defaultRecentLimit = 20

type recentService struct {
	core *DriveServiceImpl
}

func newRecentService(core *DriveServiceImpl) *recentService {
	return &recentService{core: core}
}

func (s *recentService) list(ctx context.Context, userID string) ([]domain.FileRecord, error) {
	limit := s.core.cfg.App.RecentLimit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	files, err := s.core.files.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent files: %w", err)
	}
	return files, nil
}
