package scheduler

import (
	"maps"

	"go.trai.ch/ybuild/internal/core/domain"
)

// GetTaskStatusMap returns a copy of the internal task status map.
func (s *Scheduler) GetTaskStatusMap() map[domain.InternedString]TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.taskStatus)
}
