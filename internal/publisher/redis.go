package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/XavierBriggs/Pythia/internal/report"
	"github.com/XavierBriggs/Pythia/pkg/models"
	"github.com/redis/go-redis/v9"
)

const (
	latestKeyFormat = "pythia:report:%s:latest" // pythia:report:americanfootball_nfl:latest
	streamKeyFormat = "reports.spreads.%s"      // reports.spreads.americanfootball_nfl
)

// RedisPublisher stores the latest report rows and announces each run on a stream.
// The key is overwritten on every run; the stream is trimmed to streamMaxLen entries.
type RedisPublisher struct {
	redis        *redis.Client
	ttl          time.Duration
	streamMaxLen int64
}

// StreamMessage is the payload announced on the reports stream
type StreamMessage struct {
	RunID       string    `json:"run_id"`
	SportKey    string    `json:"sport_key"`
	GeneratedAt time.Time `json:"generated_at"`
	NoGames     bool      `json:"no_games"`
	RowCount    int       `json:"row_count"`
}

// NewRedisPublisher creates a new publisher. A zero ttl keeps the latest key forever.
func NewRedisPublisher(redisClient *redis.Client, ttl time.Duration, streamMaxLen int64) *RedisPublisher {
	return &RedisPublisher{
		redis:        redisClient,
		ttl:          ttl,
		streamMaxLen: streamMaxLen,
	}
}

// LatestKey returns the key holding the latest rows for a sport
func LatestKey(sportKey string) string {
	return fmt.Sprintf(latestKeyFormat, sportKey)
}

// StreamKey returns the stream announcing runs for a sport
func StreamKey(sportKey string) string {
	return fmt.Sprintf(streamKeyFormat, sportKey)
}

// Publish writes the report rows and the run announcement in one transaction
func (p *RedisPublisher) Publish(ctx context.Context, r *report.Report) error {
	rows := r.Rows
	if rows == nil {
		rows = []models.ReportRow{}
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal report rows: %w", err)
	}

	msg, err := json.Marshal(StreamMessage{
		RunID:       r.RunID,
		SportKey:    r.SportKey,
		GeneratedAt: r.GeneratedAt.UTC(),
		NoGames:     r.NoGames,
		RowCount:    len(rows),
	})
	if err != nil {
		return fmt.Errorf("marshal stream message: %w", err)
	}

	pipe := p.redis.TxPipeline()
	pipe.Set(ctx, LatestKey(r.SportKey), data, p.ttl)
	pipe.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey(r.SportKey),
		MaxLen: p.streamMaxLen,
		Values: map[string]interface{}{
			"data": string(msg),
		},
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis publish exec: %w", err)
	}

	return nil
}

// Latest returns the raw JSON rows of the most recent report, or ErrNoReport
func (p *RedisPublisher) Latest(ctx context.Context, sportKey string) ([]byte, error) {
	data, err := p.redis.Get(ctx, LatestKey(sportKey)).Bytes()
	if err == redis.Nil {
		return nil, ErrNoReport
	}
	if err != nil {
		return nil, fmt.Errorf("redis get latest: %w", err)
	}
	return data, nil
}
