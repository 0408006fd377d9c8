package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tschuyebuhl/opinion-scraper/runner"
)

var (
	wordFrequency = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "opinion_scraper_word_frequency",
			Help: "Occurrences of each word repeated more than twice in translated titles",
		},
		[]string{"word"},
	)
	sessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opinion_scraper_sessions_total",
			Help: "Browser sessions run, by outcome",
		},
		[]string{"outcome"},
	)
	articlesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opinion_scraper_articles_total",
			Help: "Articles processed by sessions, by outcome",
		},
		[]string{"outcome"},
	)
)

func UpdateMetrics(res runner.Result) {
	wordFrequency.Reset()
	for word, count := range res.Frequency {
		wordFrequency.WithLabelValues(word).Set(float64(count))
	}
	for _, s := range res.Sessions {
		if s.Failed() {
			sessionsTotal.WithLabelValues("failed").Inc()
		} else {
			sessionsTotal.WithLabelValues("succeeded").Inc()
		}
		articlesTotal.WithLabelValues("translated").Add(float64(len(s.Articles)))
		for _, e := range s.Errors {
			articlesTotal.WithLabelValues(string(e.Stage) + "_failed").Inc()
		}
	}
}

func RunMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		slog.Info("serving metrics", "addr", addr)
		err := http.ListenAndServe(addr, mux)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("error serving metrics", "error", err)
		}
	}()
}
