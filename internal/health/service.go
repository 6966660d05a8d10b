package health

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"mizan-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for health check. If nil, database is reported
// as disconnected.
type DBPinger interface {
	Ping() error
}

// CollectResult is the health payload for /health/json.
type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	HeapUsed      uint64 `json:"heapUsed"`
	Goroutines    int    `json:"goroutines"`
	Platform      string `json:"platform"`
	GoVersion     string `json:"goVersion"`
}

type TrafficInfo struct {
	TotalRequests   int64       `json:"totalRequests"`
	FailedCount     int64       `json:"failedCount"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

// CollectHealth gathers runtime stats, request counters from Redis,
// and dependency pings.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger) CollectResult {
	result := CollectResult{Dependencies: make(map[string]DepStatus)}

	dbStatus := "disconnected"
	var dbPingMs interface{}
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			dbPingMs = time.Since(start).Milliseconds()
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	redisStatus := "disconnected"
	var redisPingMs interface{}
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			redisPingMs = time.Since(start).Milliseconds()
			redisStatus = "connected"
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}

	if rdb != nil && redisStatus == "connected" {
		result.Traffic = collectTraffic(ctx, rdb)
		if raw, err := rdb.Get(ctx, middleware.KeyStartTime).Result(); err == nil {
			if startMs, err := strconv.ParseInt(raw, 10, 64); err == nil {
				result.Runtime.UptimeSeconds = (time.Now().UnixMilli() - startMs) / 1000
			}
		}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	result.Runtime.HeapUsed = mem.HeapAlloc
	result.Runtime.Goroutines = runtime.NumGoroutine()
	result.Runtime.Platform = runtime.GOOS
	result.Runtime.GoVersion = runtime.Version()

	result.Status = "ok"
	if redisStatus == "error" || dbStatus == "error" {
		result.Status = "degraded"
	}
	return result
}

func collectTraffic(ctx context.Context, rdb *redis.Client) TrafficInfo {
	t := TrafficInfo{}
	t.TotalRequests, _ = strconv.ParseInt(rdb.Get(ctx, middleware.KeyReqTotal).Val(), 10, 64)
	t.FailedCount, _ = strconv.ParseInt(rdb.Get(ctx, middleware.KeyReqErrors).Val(), 10, 64)

	resTotal, _ := strconv.ParseFloat(rdb.Get(ctx, middleware.KeyResTime).Val(), 64)
	resCount, _ := strconv.ParseInt(rdb.Get(ctx, middleware.KeyResCount).Val(), 10, 64)
	if resCount > 0 {
		t.AvgResponseTime = fmt.Sprintf("%.1fms", resTotal/float64(resCount))
	}
	if raw, err := rdb.Get(ctx, middleware.KeyLastReq).Result(); err == nil {
		t.LastRequest = raw
	}
	return t
}
