// Package period строит временные интервалы для графиков пожертвований.
package period

import (
	"strconv"
	"time"
)

// Timeframe гранулярность графика.
type Timeframe string

const (
	// Monthly последние 6 месяцев.
	Monthly Timeframe = "monthly"
	// Weekly последние 4 недели.
	Weekly Timeframe = "weekly"
)

// Bucket интервал [Start, End).
type Bucket struct {
	Label string
	Start time.Time
	End   time.Time
}

// Parse возвращает гранулярность; неизвестное и пустое значение трактуется как Monthly.
func Parse(s string) Timeframe {
	if Timeframe(s) == Weekly {
		return Weekly
	}
	return Monthly
}

// Buckets возвращает интервалы, заканчивающиеся текущим (включая now), в порядке возрастания.
func Buckets(tf Timeframe, now time.Time) []Bucket {
	now = now.UTC()
	if tf == Weekly {
		return weeks(now, 4)
	}
	return months(now, 6)
}

func months(now time.Time, n int) []Bucket {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	res := make([]Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := first.AddDate(0, -i, 0)
		res = append(res, Bucket{
			Label: start.Format("Jan"),
			Start: start,
			End:   start.AddDate(0, 1, 0),
		})
	}
	return res
}

// weeks строит недели, начинающиеся с понедельника (как date_trunc('week') в Postgres).
func weeks(now time.Time, n int) []Bucket {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	res := make([]Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := monday.AddDate(0, 0, -7*i)
		res = append(res, Bucket{
			Label: "Week " + strconv.Itoa(n-i),
			Start: start,
			End:   start.AddDate(0, 0, 7),
		})
	}
	return res
}
