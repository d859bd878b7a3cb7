package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"swiftship-api-io/api/internal/common"
)

var CHANNEL_GLOBAL_CACHE = "GLOBAL_CACHE"

type MessageType string

const (
	InvalidateUserAddresses    MessageType = "user.addresses.invalidate"
	InvalidateUserWallet       MessageType = "user.wallet.invalidate"
	InvalidateUserTransactions MessageType = "user.transactions.invalidate"
	InvalidateUserPaymentCards MessageType = "user.payment.cards.invalidate"
	InvalidateUserShipments    MessageType = "user.shipments.invalidate"
)

type Message struct {
	Type      MessageType `json:"type"`
	Payload   string      `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

// Publish pushes a cache invalidation message to Redis pub/sub as JSON.
// Edge caches subscribe to the global channel and drop their copies.
func Publish(ctx context.Context, messageType MessageType, payload string) error {
	message := Message{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}

	messageJSON, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal cache message: %v", err)
		return err
	}

	err = common.REDIS.Publish(ctx, CHANNEL_GLOBAL_CACHE, string(messageJSON)).Err()
	if err != nil {
		log.Printf("Failed to publish cache message: %v", err)
		return err
	}

	return nil
}
