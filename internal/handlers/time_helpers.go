package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// parseDay aceita "2006-01-02" (meia-noite no fuso padrão) ou RFC3339.
func parseDay(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", value, timezone.Default()); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// parseRange lê from/to da query. "to" em formato de data inclui o dia
// inteiro.
func parseRange(c *gin.Context) (from, to time.Time, ok bool) {
	if v := c.Query("from"); v != "" {
		t, err := parseDay(v)
		if err != nil {
			return from, to, false
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseDay(v)
		if err != nil {
			return from, to, false
		}
		if len(v) == len("2006-01-02") {
			t = t.AddDate(0, 0, 1)
		}
		to = t
	}
	return from, to, true
}

func parseID(value string) (uint, bool) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryID devolve 0 quando o parâmetro está ausente.
func queryID(c *gin.Context, key string) (uint, bool) {
	v := c.Query(key)
	if v == "" {
		return 0, true
	}
	return parseID(v)
}
