package store

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"swiftship-api-io/api/internal/common"
	"swiftship-api-io/api/pkg/services"
)

// ExecuteTransaction runs callback inside one majority-committed multi
// document transaction.
func ExecuteTransaction(ctx context.Context, callback func(ctx mongo.SessionContext) (any, error)) (any, error) {
	wc := writeconcern.New(writeconcern.WMajority())
	txnOptions := options.Transaction().SetWriteConcern(wc)

	session, err := common.DB.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, callback, txnOptions)
}

// TxRunner adapts ExecuteTransaction to the service layer's transaction
// contract. The session context it passes down makes every store call inside
// the callback part of the same transaction.
func TxRunner() services.TxRunner {
	return func(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
		return ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
			return fn(sessCtx)
		})
	}
}
