package analytics

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/analytics/models"
)

// bucketAccumulator копит количество и сумму по ключам временных интервалов
type bucketAccumulator struct {
	granularity domain.BucketGranularity
	buckets     map[domain.BucketKey]*models.TimeBucket
}

func newBucketAccumulator(period domain.AnalyticsPeriod) *bucketAccumulator {
	return &bucketAccumulator{
		granularity: domain.Granularity(period),
		buckets:     make(map[domain.BucketKey]*models.TimeBucket),
	}
}

func (a *bucketAccumulator) add(at time.Time, amount float64) {
	key := domain.NewBucketKey(at, a.granularity)

	bucket, ok := a.buckets[key]
	if !ok {
		bucket = &models.TimeBucket{
			PeriodStart: key.Start,
			Label:       key.Label(),
		}
		a.buckets[key] = bucket
	}

	bucket.Count++
	bucket.Amount += amount
}

// series возвращает накопленные интервалы в хронологическом порядке.
// Пустое окно дает пустой, но не nil, срез.
func (a *bucketAccumulator) series() []models.TimeBucket {
	keys := make([]domain.BucketKey, 0, len(a.buckets))
	for key := range a.buckets {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})

	out := make([]models.TimeBucket, 0, len(keys))
	for _, key := range keys {
		out = append(out, *a.buckets[key])
	}

	return out
}
