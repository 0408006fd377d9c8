package main

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/tschuyebuhl/opinion-scraper/data"
	"github.com/tschuyebuhl/opinion-scraper/runner"
	"github.com/tschuyebuhl/opinion-scraper/wordfreq"
)

func TestUpdateMetrics(t *testing.T) {
	failedBefore := testutil.ToFloat64(sessionsTotal.WithLabelValues("failed"))
	translatedBefore := testutil.ToFloat64(articlesTotal.WithLabelValues("translated"))

	UpdateMetrics(runner.Result{
		Sessions: []data.SessionResult{
			{Session: "a", Articles: make([]data.Article, 3), Errors: []*data.ArticleError{{Stage: data.StageTranslate}}},
			{Session: "b", Err: errors.New("boom")},
		},
		Frequency: wordfreq.Table{"crisis": 3},
	})

	assert.Equal(t, 3.0, testutil.ToFloat64(wordFrequency.WithLabelValues("crisis")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(sessionsTotal.WithLabelValues("failed")))
	assert.Equal(t, translatedBefore+3, testutil.ToFloat64(articlesTotal.WithLabelValues("translated")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(articlesTotal.WithLabelValues("translate_failed")), 1.0)

	UpdateMetrics(runner.Result{Frequency: wordfreq.Table{"europe": 4}})
	assert.Equal(t, 1, testutil.CollectAndCount(wordFrequency), "stale words are dropped")
}
