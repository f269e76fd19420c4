package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SchedulingPolicy guarda os limites do motor de agenda.
type SchedulingPolicy struct {
	OverrideCapPerDay    int `yaml:"override_cap_per_day"`
	MaxSeriesOccurrences int `yaml:"max_series_occurrences"`
	SlotStepMinutes      int `yaml:"slot_step_minutes"`
	LockTTLSeconds       int `yaml:"lock_ttl_seconds"`
	LockWaitSeconds      int `yaml:"lock_wait_seconds"`
}

func DefaultPolicy() *SchedulingPolicy {
	return &SchedulingPolicy{
		OverrideCapPerDay:    2,
		MaxSeriesOccurrences: 52,
		SlotStepMinutes:      15,
		LockTTLSeconds:       10,
		LockWaitSeconds:      5,
	}
}

// Normalize troca valores ausentes ou fora de faixa pelos padrões.
func (p *SchedulingPolicy) Normalize() {
	def := DefaultPolicy()

	if p.OverrideCapPerDay <= 0 {
		p.OverrideCapPerDay = def.OverrideCapPerDay
	}
	if p.MaxSeriesOccurrences <= 0 || p.MaxSeriesOccurrences > def.MaxSeriesOccurrences {
		p.MaxSeriesOccurrences = def.MaxSeriesOccurrences
	}
	if p.SlotStepMinutes <= 0 {
		p.SlotStepMinutes = def.SlotStepMinutes
	}
	if p.LockTTLSeconds <= 0 {
		p.LockTTLSeconds = def.LockTTLSeconds
	}
	if p.LockWaitSeconds <= 0 {
		p.LockWaitSeconds = def.LockWaitSeconds
	}
}

func (p *SchedulingPolicy) LockTTL() time.Duration {
	return time.Duration(p.LockTTLSeconds) * time.Second
}

func (p *SchedulingPolicy) LockWait() time.Duration {
	return time.Duration(p.LockWaitSeconds) * time.Second
}

// LoadPolicy lê a política de path. Caminho vazio devolve os padrões.
func LoadPolicy(path string) (*SchedulingPolicy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scheduling policy: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse scheduling policy: %w", err)
	}

	p.Normalize()
	return p, nil
}
