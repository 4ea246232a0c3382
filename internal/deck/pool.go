package deck

import (
	"github.com/verte-zerg/fiszki/internal/model"
)

// Pool narrows items to the study pool described by cfg. The difficult deck
// is ordered hardest first; other pools keep the word list order. Due
// filtering is left to the caller because it depends on the moment a card
// is drawn.
func Pool(items []*model.VocabularyItem, cfg model.StudyConfig) []*model.VocabularyItem {
	filters := []FilterFunc{
		ByUnits(cfg.Units...),
		ByCategory(cfg.Category),
		Search(cfg.Search),
		ByStatus(cfg.Status),
	}
	if cfg.Hard {
		filters = append(filters, MinErrorRate(HardFilterRate))
	}
	pool := Apply(items, filters...)
	if cfg.Difficult {
		return Difficult(pool, DifficultDeckRate)
	}
	return pool
}
