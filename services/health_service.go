package services

import (
	"context"
	"database/sql"
	"runtime"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/shirou/gopsutil/v4/mem"
)

var uptimeStart time.Time

func init() {
	uptimeStart = time.Now()
}

// Pinger is anything whose connectivity can be checked.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// poolStatter is implemented by database handles that expose pool statistics.
type poolStatter interface {
	GetStats() sql.DBStats
}

type serverHealthStatus struct {
	Uptime       float64   `json:"uptime"`        // in seconds
	CurrentTime  time.Time `json:"current_time"`  // server current time
	ServiceAlive bool      `json:"service_alive"` // always true if service is running
	RamStats     *RamStats `json:"ram_stats"`
	HostMemory   *RamStats `json:"host_memory,omitempty"`
	Goroutines   int       `json:"goroutines"`
}

type RamStats struct {
	TotalMB     uint64 `json:"total_mb"`
	UsedMB      uint64 `json:"used_mb"`
	FreeMB      uint64 `json:"free_mb"`
	UsedPercent uint64 `json:"used_percent"`
}

type databaseHealthStatus struct {
	Connected      bool       `json:"connected"`
	LastChecked    time.Time  `json:"last_checked"`
	ResponseTimeMs int64      `json:"response_time_ms"`
	Pool           *PoolStats `json:"pool,omitempty"`
}

type PoolStats struct {
	OpenConnections int   `json:"open_connections"`
	InUse           int   `json:"in_use"`
	Idle            int   `json:"idle"`
	WaitCount       int64 `json:"wait_count"`
}

type HealthService struct {
	logger *gecho.Logger
	db     Pinger
}

func NewHealthService(logger *gecho.Logger, db Pinger) *HealthService {
	return &HealthService{
		logger: logger,
		db:     db,
	}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	freeMB := totalMB - usedMB
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
		UsedPercent: usedPercent,
	}
}

// getHostMemory reads system wide memory. It is nil where the platform
// does not expose it.
func getHostMemory() *RamStats {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil
	}
	return &RamStats{
		TotalMB:     vm.Total / 1024 / 1024,
		UsedMB:      vm.Used / 1024 / 1024,
		FreeMB:      vm.Available / 1024 / 1024,
		UsedPercent: uint64(vm.UsedPercent),
	}
}

func (hs *HealthService) GetServerHealthStatus() serverHealthStatus {
	return serverHealthStatus{
		Uptime:       time.Since(uptimeStart).Seconds(),
		CurrentTime:  time.Now(),
		ServiceAlive: true,
		RamStats:     getRamStats(),
		HostMemory:   getHostMemory(),
		Goroutines:   runtime.NumGoroutine(),
	}
}

func (hs *HealthService) GetDatabaseHealthStatus(ctx context.Context) (databaseHealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := hs.db.PingContext(ctx)
	elapsed := time.Since(start).Milliseconds()

	dbStatus := databaseHealthStatus{
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: elapsed,
	}

	if statter, ok := hs.db.(poolStatter); ok {
		stats := statter.GetStats()
		dbStatus.Pool = &PoolStats{
			OpenConnections: stats.OpenConnections,
			InUse:           stats.InUse,
			Idle:            stats.Idle,
			WaitCount:       stats.WaitCount,
		}
	}

	if err != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", err))
	}

	return dbStatus, err
}
