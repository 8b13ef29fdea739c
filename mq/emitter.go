package mq

import (
	"context"
	"encoding/json"
	"log"

	"herbsera/models"
	"herbsera/rdx"
)

// OrderEventsChannel is the redis pub/sub channel carrying order status
// events to the live-update hub.
const OrderEventsChannel = "order-events"

// EmitOrderEvent publishes an order status event. Emission failures are
// logged, never surfaced to the request: the order write has already
// committed and the stream is best-effort.
func EmitOrderEvent(ctx context.Context, event models.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[mq] failed to marshal order event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, OrderEventsChannel, data).Err(); err != nil {
		log.Printf("[mq] failed to publish order event: %v", err)
	}
}

// Subscribe starts consuming order events, invoking handle for each one.
// Runs until ctx is cancelled; intended to be launched from main.
func Subscribe(ctx context.Context, handle func(models.OrderEvent)) {
	sub := rdx.Conn.Subscribe(ctx, OrderEventsChannel)
	ch := sub.Channel()

	log.Println("[mq] listening for order events")
	for {
		select {
		case <-ctx.Done():
			sub.Close()
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event models.OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[mq] failed to parse order event: %v", err)
				continue
			}
			handle(event)
		}
	}
}
