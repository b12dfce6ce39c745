package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcanizales/papeleria-api/internal/infrastructure/notify"
)

func TestPublicar_LlegaAlSuscriptor(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	feed := notify.NewRedisFeedWithClient(client)
	defer feed.Close()

	ctx := context.Background()
	sub := redis.NewClient(&redis.Options{Addr: mr.Addr()}).Subscribe(ctx, "items:abc")
	defer sub.Close()

	// Esperar la suscripción antes de publicar.
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, feed.Publicar(ctx, "items:abc", "stock"))

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, "items:abc", msg.Channel)
		assert.JSONEq(t, `"stock"`, msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("no llegó el mensaje publicado")
	}
}

func TestPublicar_PayloadNoSerializable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	feed := notify.NewRedisFeedWithClient(client)
	defer feed.Close()

	err := feed.Publicar(context.Background(), "items:abc", make(chan int))
	assert.Error(t, err)
}
