package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/standapp/standapp-backend/pkg/clientip"
)

// Plan generation hits the hosted provider and is the most expensive route.
// Per-IP: 6 plans/min with a small burst. Chat history reads get a looser
// limit since the UI paginates on scroll.

const (
	planGenRPS         = 0.1 // 6/min
	planGenBurst       = 3
	historyRPS         = 0.5 // 30/min
	historyBurst       = 20
	genCleanupInterval = 5 * time.Minute
	genLimiterTTL      = 30 * time.Minute
)

type genLimiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

var (
	genEntries   = make(map[string]*genLimiterEntry)
	genEntriesMu sync.Mutex
	genCleanup   bool
)

func getGenLimiter(key string, rps float64, burst int) *rate.Limiter {
	genEntriesMu.Lock()
	defer genEntriesMu.Unlock()
	startGenCleanupOnce()

	e, ok := genEntries[key]
	if !ok {
		e = &genLimiterEntry{
			limiter: rate.NewLimiter(rate.Limit(rps), burst),
			lastUse: time.Now(),
		}
		genEntries[key] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func startGenCleanupOnce() {
	if genCleanup {
		return
	}
	genCleanup = true
	go func() {
		ticker := time.NewTicker(genCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			genEntriesMu.Lock()
			now := time.Now()
			for k, e := range genEntries {
				if now.Sub(e.lastUse) > genLimiterTTL {
					delete(genEntries, k)
				}
			}
			genEntriesMu.Unlock()
		}
	}()
}

// GenerationRateLimit applies per-IP limits to plan generation and chat
// history routes. Returns 429 with headers when exceeded.
func GenerationRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var key string
		var rps float64
		var burst int

		switch {
		case strings.HasPrefix(r.URL.Path, "/api/plans/"):
			key, rps, burst = "plan:", planGenRPS, planGenBurst
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/chat/history"):
			key, rps, burst = "history:", historyRPS, historyBurst
		default:
			next.ServeHTTP(w, r)
			return
		}

		ip := clientip.RealClientIP(r)
		limiter := getGenLimiter(key+ip, rps, burst)

		if !limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(burst))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"message":"Too many requests. Please slow down."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
