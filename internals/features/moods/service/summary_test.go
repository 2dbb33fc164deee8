package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/features/moods/model"
)

func day(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

func TestSummarize(t *testing.T) {
	rows := []model.MoodModel{
		{MoodValue: model.MoodHappy, MoodIntensity: 4, MoodRecordedOn: day(2)},
		{MoodValue: model.MoodSad, MoodIntensity: 2, MoodRecordedOn: day(1)},
		{MoodValue: model.MoodHappy, MoodIntensity: 5, MoodRecordedOn: day(2)},
	}
	s := Summarize(rows)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.PerMood[model.MoodHappy])
	assert.Equal(t, 1, s.PerMood[model.MoodSad])
	assert.Equal(t, 0, s.PerMood[model.MoodAngry])
	assert.Len(t, s.PerMood, len(model.Moods))
	assert.Equal(t, 3.67, s.AverageIntensity)

	require.Len(t, s.Days, 2)
	assert.Equal(t, "2026-03-01", s.Days[0].Date)
	assert.Equal(t, 1, s.Days[0].Total)
	assert.Equal(t, 2.0, s.Days[0].AverageIntensity)
	assert.Equal(t, "2026-03-02", s.Days[1].Date)
	assert.Equal(t, 2, s.Days[1].PerMood[model.MoodHappy])
	assert.Equal(t, 4.5, s.Days[1].AverageIntensity)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.AverageIntensity)
	assert.NotNil(t, s.Days)
	assert.Empty(t, s.Days)
}
