package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Redis wraps the shared client used for report snapshots and the live
// vehicle position store. All methods are best-effort: a cold or absent
// cache never fails a request.
type Redis struct {
	client *redis.Client
}

func New(redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 3

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Redis{client: client}, nil
}

// Get retrieves a JSON-encoded value; returns false on miss or decode error.
func (r *Redis) Get(ctx context.Context, key string, dest any) bool {
	if r == nil || r.client == nil {
		return false
	}
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

// Set stores a JSON-encoded value with TTL.
func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if r == nil || r.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache set failed")
	}
}

func (r *Redis) Del(ctx context.Context, keys ...string) {
	if r == nil || r.client == nil || len(keys) == 0 {
		return
	}
	r.client.Del(ctx, keys...)
}

// SetVehiclePosition records the latest position of a vehicle in the geo set.
func (r *Redis) SetVehiclePosition(ctx context.Context, vehicleID int64, lat, lng float64) error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.GeoAdd(ctx, "vehicle:positions", &redis.GeoLocation{
		Name:      vehicleKey(vehicleID),
		Latitude:  lat,
		Longitude: lng,
	}).Err()
}

// VehiclePosition returns the last known position, or ok=false when the
// vehicle has not reported yet.
func (r *Redis) VehiclePosition(ctx context.Context, vehicleID int64) (lat, lng float64, ok bool) {
	if r == nil || r.client == nil {
		return 0, 0, false
	}
	pos, err := r.client.GeoPos(ctx, "vehicle:positions", vehicleKey(vehicleID)).Result()
	if err != nil || len(pos) == 0 || pos[0] == nil {
		return 0, 0, false
	}
	return pos[0].Latitude, pos[0].Longitude, true
}

func vehicleKey(id int64) string {
	return "v:" + strconv.FormatInt(id, 10)
}
