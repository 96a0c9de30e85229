// simulate drives concurrent booking and confirmation traffic against a
// running api-server to verify the contention guarantees: no doctor slot
// may end up double-confirmed no matter how many workers race for it.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smarthealth/scheduling/internal/db"
)

type simConfig struct {
	apiBaseURL string
	duration   time.Duration
	workers    int
	doctors    int
	patients   int
}

type dataPool struct {
	patients []uuid.UUID
	doctors  []uuid.UUID
	slots    map[uuid.UUID][]slotPayload

	mu           sync.RWMutex
	appointments []uuid.UUID
}

type slotPayload struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type counters struct {
	created   atomic.Int64
	confirmed atomic.Int64
	conflicts atomic.Int64
	rejected  atomic.Int64
	errors    atomic.Int64
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := simConfig{}
	flag.StringVar(&cfg.apiBaseURL, "api", "http://127.0.0.1:8080", "api-server base URL")
	flag.DurationVar(&cfg.duration, "duration", 30*time.Second, "how long to run")
	flag.IntVar(&cfg.workers, "workers", 16, "concurrent workers")
	flag.IntVar(&cfg.doctors, "doctors", 5, "doctors to target (fewer = more contention)")
	flag.IntVar(&cfg.patients, "patients", 100, "patients to draw from")
	flag.Parse()

	pool, err := loadDataPool(cfg)
	if err != nil {
		log.Fatalf("load data pool: %v", err)
	}
	log.Printf("simulating with %d patients, %d doctors, %d workers for %s",
		len(pool.patients), len(pool.doctors), cfg.workers, cfg.duration)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.duration)
	defer cancel()

	var c counters
	var wg sync.WaitGroup
	for i := 0; i < cfg.workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			worker(ctx, cfg, pool, &c, rand.New(rand.NewSource(seed)))
		}(time.Now().UnixNano() + int64(i))
	}
	wg.Wait()

	fmt.Printf("\ncreated=%d confirmed=%d conflicts=%d rejected=%d errors=%d\n",
		c.created.Load(), c.confirmed.Load(), c.conflicts.Load(), c.rejected.Load(), c.errors.Load())
}

func loadDataPool(cfg simConfig) (*dataPool, error) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required to load seed data")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pgPool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer pgPool.Close()

	pool := &dataPool{slots: make(map[uuid.UUID][]slotPayload)}

	pool.patients, err = loadIDs(ctx, pgPool, `SELECT id FROM patients LIMIT $1`, cfg.patients)
	if err != nil {
		return nil, err
	}
	pool.doctors, err = loadIDs(ctx, pgPool, `SELECT id FROM doctors WHERE availability_status = 'available' LIMIT $1`, cfg.doctors)
	if err != nil {
		return nil, err
	}

	for _, doctorID := range pool.doctors {
		rows, err := pgPool.Query(ctx, `
			SELECT slot_date, start_time, end_time
			FROM doctor_slots
			WHERE doctor_id = $1 AND is_booked = false
			ORDER BY slot_date, start_time
			LIMIT 50
		`, doctorID)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var s slotPayload
			if err := rows.Scan(&s.Date, &s.StartTime, &s.EndTime); err != nil {
				rows.Close()
				return nil, err
			}
			pool.slots[doctorID] = append(pool.slots[doctorID], s)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	return pool, nil
}

func loadIDs(ctx context.Context, pool *pgxpool.Pool, query string, limit int) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func worker(ctx context.Context, cfg simConfig, pool *dataPool, c *counters, rng *rand.Rand) {
	client := &http.Client{Timeout: 5 * time.Second}

	for ctx.Err() == nil {
		if rng.Float64() < 0.7 {
			bookOne(ctx, cfg, pool, c, rng, client)
		} else {
			confirmOne(ctx, cfg, pool, c, rng, client)
		}
	}
}

func bookOne(ctx context.Context, cfg simConfig, pool *dataPool, c *counters, rng *rand.Rand, client *http.Client) {
	doctorID := pool.doctors[rng.Intn(len(pool.doctors))]
	slots := pool.slots[doctorID]
	if len(slots) == 0 {
		return
	}
	body, _ := json.Marshal(map[string]any{
		"patient_id": pool.patients[rng.Intn(len(pool.patients))].String(),
		"doctor_id":  doctorID.String(),
		"slot":       slots[rng.Intn(len(slots))],
		"reason":     "load test",
		"urgency":    "normal",
	})

	status, respBody := post(ctx, client, cfg.apiBaseURL+"/appointments", body)
	switch {
	case status == http.StatusCreated:
		c.created.Add(1)
		var resp struct {
			ID uuid.UUID `json:"id"`
		}
		if json.Unmarshal(respBody, &resp) == nil && resp.ID != uuid.Nil {
			pool.mu.Lock()
			pool.appointments = append(pool.appointments, resp.ID)
			pool.mu.Unlock()
		}
	case status == http.StatusConflict:
		c.conflicts.Add(1)
	case status >= 400 && status < 500:
		c.rejected.Add(1)
	default:
		c.errors.Add(1)
	}
}

func confirmOne(ctx context.Context, cfg simConfig, pool *dataPool, c *counters, rng *rand.Rand, client *http.Client) {
	pool.mu.RLock()
	n := len(pool.appointments)
	if n == 0 {
		pool.mu.RUnlock()
		return
	}
	id := pool.appointments[rng.Intn(n)]
	pool.mu.RUnlock()

	status, _ := post(ctx, client, fmt.Sprintf("%s/appointments/%s/accept", cfg.apiBaseURL, id), nil)
	switch {
	case status == http.StatusOK:
		c.confirmed.Add(1)
	case status == http.StatusConflict:
		c.conflicts.Add(1)
	case status >= 400 && status < 500:
		c.rejected.Add(1)
	default:
		c.errors.Add(1)
	}
}

func post(ctx context.Context, client *http.Client, url string, body []byte) (int, []byte) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	return resp.StatusCode, respBody
}
