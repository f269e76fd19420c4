package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// generateSeries grava os filhos de root um a um. Ocorrências recusadas
// (conflito, expediente, limite) são puladas e contadas.
func (d *Dependencies) generateSeries(
	ctx context.Context,
	root *models.Appointment,
	rule domain.RecurrenceRule,
	allowOverride bool,
	sched *domain.Schedule,
) ([]models.Appointment, int, error) {

	drafts, err := domain.Expand(root, rule, d.maxSeries())
	if err != nil {
		return nil, 0, err
	}

	created := make([]models.Appointment, 0, len(drafts))
	skipped := 0

	for i := range drafts {
		draft := &drafts[i]

		err := d.withDayLock(ctx, sched, draft.Date, func() error {
			res, err := d.Engine.CheckSchedule(ctx, sched, draft.Date, draft.Duration, domain.CheckOptions{
				AllowOverride: allowOverride,
			})
			if err != nil {
				return err
			}
			draft.IsOverride = res.IsOverride
			return d.save(ctx, draft)
		})
		if err != nil {
			skipped++
			d.Logger.Warn().
				Err(err).
				Uint("root_id", root.ID).
				Time("date", draft.Date).
				Msg("recurring occurrence skipped")
			continue
		}

		created = append(created, *draft)
	}

	return created, skipped, nil
}

// futureSiblings devolve os filhos da raiz de ap com data >= from,
// excluindo o próprio ap, limitados pelo teto da série.
func (d *Dependencies) futureSiblings(
	ctx context.Context,
	ap *models.Appointment,
	from time.Time,
	narrow func(*domain.Filter),
) ([]models.Appointment, error) {

	f := domain.Filter{
		AccountID: ap.AccountID,
		ParentID:  ap.RootID(),
		From:      from,
		ExcludeID: ap.ID,
		Limit:     d.maxSeries(),
	}
	if narrow != nil {
		narrow(&f)
	}
	return d.Store.Find(ctx, f)
}
