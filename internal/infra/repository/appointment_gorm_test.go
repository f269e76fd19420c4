package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// dryRun monta o SQL sem abrir conexão com o Postgres.
func dryRun(t *testing.T) *AppointmentGormRepository {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return NewAppointmentGormRepository(db)
}

func TestScopedBuildsEveryFilter(t *testing.T) {
	repo := dryRun(t)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := domain.Filter{
		AccountID:       1,
		ProfessionalID:  2,
		ClientID:        3,
		Statuses:        domain.BlockingStatuses(),
		ExcludeStatuses: []domain.Status{domain.StatusCancelled},
		ExcludeID:       4,
		ParentID:        5,
		From:            from,
		To:              from.AddDate(0, 0, 1),
		OverrideOnly:    true,
		ReminderPending: true,
	}

	var list []models.Appointment
	stmt := repo.scoped(context.Background(), f).Find(&list).Statement
	sql := stmt.SQL.String()

	for _, want := range []string{
		"account_id =",
		"professional_id =",
		"client_id =",
		"status IN",
		"status NOT IN",
		"id <>",
		"recurrence_parent_appointment_id =",
		"date >=",
		"date <",
		"is_override =",
		"send_reminder =",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("missing %q in %s", want, sql)
		}
	}
}

func TestScopedEmptyFilterHasNoConditions(t *testing.T) {
	repo := dryRun(t)

	var list []models.Appointment
	sql := repo.scoped(context.Background(), domain.Filter{}).Find(&list).Statement.SQL.String()
	if strings.Contains(sql, "WHERE") {
		t.Fatalf("unexpected where clause: %s", sql)
	}
}
