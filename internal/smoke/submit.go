package smoke

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/okian/studyscore/internal/adapters/http/client"
	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/logger"
)

// submitStudents posts every student with the linear model using a worker
// pool. Results keep the input order; failed submissions are left out.
func submitStudents(ctx context.Context, api *client.Client, cfg *Config, students []Student, stats *Stats) ([]Result, error) {
	log := logger.Get()
	log.Info(ctx, "submitting students",
		logger.Int("students", len(students)),
		logger.Int("workers", cfg.Workers))

	var (
		failed  int64
		results = make([]*Result, len(students))
		jobs    = make(chan int, cfg.Workers*2)
		wg      sync.WaitGroup
	)

	for w := 0; w < max(cfg.Workers, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				st := students[i]
				resp, err := api.Predict(ctx, model.PredictionRequest{Name: st.Name, StudyHours: st.StudyHours}, model.ModelLinear)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					log.Warn(ctx, "prediction failed",
						logger.String("name", st.Name),
						logger.String("detail", client.DetailOf(err)),
						logger.Error(err))
					continue
				}
				log.Debug(ctx, "prediction",
					logger.String("name", st.Name),
					logger.Float64("study_hours", st.StudyHours),
					logger.Float64("score", resp.Score))
				results[i] = &Result{Student: st, Score: resp.Score}
			}
		}()
	}

feed:
	for i := range students {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	out := make([]Result, 0, len(students))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	stats.Succeeded = len(out)
	stats.Failed = int(failed)

	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	if failed > 0 {
		return out, fmt.Errorf("%w: %d of %d predictions failed", ErrSubmit, failed, len(students))
	}
	return out, nil
}
