package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal 按路由与状态码统计 HTTP 请求数
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "status"},
	)

	// RequestDuration 统计 HTTP 请求耗时
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outfit_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"route"},
	)

	// RecommendPairs 统计每次推荐返回的搭配数（截断前）
	RecommendPairs = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "outfit_recommend_pairs",
			Help:    "Number of ranked pairs per recommendation before truncation",
			Buckets: []float64{0, 1, 2, 4, 9, 16, 25},
		},
	)

	// RecommendNoMatchTotal 统计无匹配的推荐次数
	RecommendNoMatchTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outfit_recommend_no_match_total",
			Help: "Total number of recommendations that found no pair",
		},
	)
)
