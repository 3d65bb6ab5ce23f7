package factory

import (
	"github.com/rs/zerolog"

	"github.com/studyhall/studyhall-server/internal/config"
	"github.com/studyhall/studyhall-server/internal/store"
	"github.com/studyhall/studyhall-server/internal/store/memory"
)

// NewStore creates the repository store. The dataset is volatile by
// design; with SeedDemoData set it starts with the demo fixture rows.
func NewStore(cfg *config.Config, log zerolog.Logger) store.Store {
	if cfg.SeedDemoData {
		log.Info().Msg("seeding store with demo fixture data")
		return memory.NewSeeded()
	}
	return memory.New()
}
