package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmcanizales/papeleria-api/internal/application/alertas"
	"github.com/jmcanizales/papeleria-api/pkg/config"
	"github.com/redis/go-redis/v9"
)

var _ alertas.CambioFeed = (*RedisFeed)(nil)

// RedisFeed publica cambios vía Redis pub/sub. Los frontends se suscriben al
// canal del ítem o usuario que les interesa y refrescan al recibir cualquier
// mensaje; el payload es informativo, no un contrato.
type RedisFeed struct {
	client *redis.Client
}

// NewRedisFeed conecta el cliente y verifica con PING.
func NewRedisFeed(ctx context.Context, cfg config.RedisConfig) (*RedisFeed, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisFeed{client: client}, nil
}

// NewRedisFeedWithClient construye el feed sobre un cliente existente (tests).
func NewRedisFeedWithClient(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

// Publicar serializa el payload a JSON y lo publica en el canal.
func (f *RedisFeed) Publicar(ctx context.Context, canal string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := f.client.Publish(ctx, canal, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", canal, err)
	}
	return nil
}

// Close cierra la conexión.
func (f *RedisFeed) Close() error {
	return f.client.Close()
}
