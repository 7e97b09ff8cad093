package service

import (
	"sync/atomic"

	"tipbot/internal/core/domain"
)

// ModeSwitch is the process-wide normal/maintenance flag. It is read on every
// command and may be flipped at runtime by the admin API or a config reload.
type ModeSwitch struct {
	v atomic.Value
}

// NewModeSwitch creates a switch starting in initial.
func NewModeSwitch(initial domain.BotMode) *ModeSwitch {
	s := &ModeSwitch{}
	s.v.Store(initial)
	return s
}

// Mode implements ports.ModeSource.
func (s *ModeSwitch) Mode() domain.BotMode {
	return s.v.Load().(domain.BotMode)
}

// Set replaces the mode and reports the previous one.
func (s *ModeSwitch) Set(mode domain.BotMode) domain.BotMode {
	return s.v.Swap(mode).(domain.BotMode)
}
