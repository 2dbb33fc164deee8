package service

import (
	"math"
	"sort"

	"schoolhub_backend/internals/features/moods/model"
	helper "schoolhub_backend/internals/helpers"
)

type DaySummary struct {
	Date             string         `json:"date"`
	Total            int            `json:"total"`
	PerMood          map[string]int `json:"per_mood"`
	AverageIntensity float64        `json:"average_intensity"`
}

type Summary struct {
	Total            int            `json:"total"`
	PerMood          map[string]int `json:"per_mood"`
	AverageIntensity float64        `json:"average_intensity"`
	Days             []DaySummary   `json:"days"`
}

func emptyCounts() map[string]int {
	m := make(map[string]int, len(model.Moods))
	for _, k := range model.Moods {
		m[k] = 0
	}
	return m
}

func avg(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*100) / 100
}

// Summarize: hitungan per mood, rata-rata intensitas (2 desimal) dan rincian harian urut tanggal.
func Summarize(rows []model.MoodModel) Summary {
	out := Summary{PerMood: emptyCounts(), Days: []DaySummary{}}
	type acc struct {
		counts map[string]int
		sum, n int
	}
	days := map[string]*acc{}
	sum := 0
	for _, r := range rows {
		out.Total++
		out.PerMood[r.MoodValue]++
		sum += r.MoodIntensity

		key := r.MoodRecordedOn.Format(helper.DateLayout)
		a, ok := days[key]
		if !ok {
			a = &acc{counts: emptyCounts()}
			days[key] = a
		}
		a.counts[r.MoodValue]++
		a.sum += r.MoodIntensity
		a.n++
	}
	out.AverageIntensity = avg(sum, out.Total)

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a := days[k]
		out.Days = append(out.Days, DaySummary{Date: k, Total: a.n, PerMood: a.counts, AverageIntensity: avg(a.sum, a.n)})
	}
	return out
}
