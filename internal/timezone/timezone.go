package timezone

import (
	"sync"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

var (
	mu          sync.RWMutex
	defaultName = DefaultTimezone
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// SetDefault troca o fuso usado quando o profissional não tem um.
func SetDefault(tz string) bool {
	if !IsValid(tz) {
		return false
	}
	mu.Lock()
	defaultName = tz
	mu.Unlock()
	return true
}

func DefaultName() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultName
}

func Default() *time.Location {
	loc, err := time.LoadLocation(DefaultName())
	if err != nil {
		return time.UTC
	}
	return loc
}

// Location resolve tz, caindo no fuso padrão quando inválido ou vazio.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return Default()
}

func Now() time.Time {
	return time.Now().In(Default())
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// StartOfDay devolve a meia-noite do dia de t no próprio fuso de t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
