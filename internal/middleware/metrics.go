package middleware

import (
	"net/http"
	"time"
)

// RequestObserver はHTTPリクエストの計測値を受け取るインターフェース。
// metrics.Recorderがこれを満たす。
type RequestObserver interface {
	ObserveHTTPRequest(method, route string, status int, d time.Duration)
}

// NewMetricsMiddleware はリクエスト数と処理時間をルートパターン単位で記録するミドルウェアを返す。
// ルートに一致しなかったリクエストは"unmatched"として集計し、ラベルの種類が増えないようにする。
func NewMetricsMiddleware(observer RequestObserver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := routePattern(r)
			if route == "" {
				route = "unmatched"
			}
			observer.ObserveHTTPRequest(r.Method, route, rec.statusCode, time.Since(start))
		})
	}
}
