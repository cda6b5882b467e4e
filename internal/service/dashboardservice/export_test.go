package dashboardservice

import "time"

// SetClock substitui o relógio do serviço em testes.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}
