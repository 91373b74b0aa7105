package repository

import (
	"strategy-backtest/config"
	"strategy-backtest/pkg/cache"
	"strategy-backtest/pkg/logger"
)

type Repository struct {
	BacktestRepo BacktestRepository
}

func NewRepository(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache) *Repository {
	return &Repository{
		BacktestRepo: NewBacktestRepository(cfg, log, inmemoryCache),
	}
}
