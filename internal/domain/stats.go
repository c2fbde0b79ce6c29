package domain

import "time"

// CategoryStats — счётчики обработки одной категории каталога.
type CategoryStats struct {
	Letter       string
	Discovered   int
	Inserted     int
	Updated      int
	Failed       int
	ImagesSaved  int
	ImagesFailed int
	Aborted      bool
}

// RunStatistics накапливает счётчики одного прогона конвейера.
// Экземпляр принадлежит прогону и живёт не дольше процесса.
type RunStatistics struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Categories []*CategoryStats
}

func NewRunStatistics(runID string) *RunStatistics {
	return &RunStatistics{
		RunID:     runID,
		StartedAt: time.Now(),
	}
}

// StartCategory регистрирует новую категорию и возвращает её счётчики.
func (s *RunStatistics) StartCategory(letter string) *CategoryStats {
	cs := &CategoryStats{Letter: letter}
	s.Categories = append(s.Categories, cs)

	return cs
}

func (s *RunStatistics) Finish() {
	s.FinishedAt = time.Now()
}

func (s *RunStatistics) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}

	return s.FinishedAt.Sub(s.StartedAt)
}

// Totals сводит счётчики всех категорий в один.
func (s *RunStatistics) Totals() CategoryStats {
	var total CategoryStats

	for _, cs := range s.Categories {
		total.Discovered += cs.Discovered
		total.Inserted += cs.Inserted
		total.Updated += cs.Updated
		total.Failed += cs.Failed
		total.ImagesSaved += cs.ImagesSaved
		total.ImagesFailed += cs.ImagesFailed
	}

	return total
}
