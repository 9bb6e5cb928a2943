package gateway

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sellit/internal/store"
	"sellit/pkg/errors"
)

type firestoreGateway struct {
	client *firestore.Client
}

// NewFirestoreGateway returns the durable persistence gateway backed by
// Firestore. Documents are stored with their natural fields so the data
// stays queryable from the console.
func NewFirestoreGateway(client *firestore.Client) store.Gateway {
	return &firestoreGateway{client: client}
}

func (g *firestoreGateway) Get(ctx context.Context, collection, key string) ([]byte, error) {
	doc, err := g.client.Collection(collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Document", err)
		}
		return nil, errors.Internal("Failed to get document", err)
	}

	data, err := json.Marshal(doc.Data())
	if err != nil {
		return nil, errors.Internal("Failed to encode document data", err)
	}
	return data, nil
}

func (g *firestoreGateway) Set(ctx context.Context, collection, key string, value []byte) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(value, &fields); err != nil {
		return errors.Internal("Failed to decode document data", err)
	}

	_, err := g.client.Collection(collection).Doc(key).Set(ctx, fields)
	if err != nil {
		return errors.Internal("Failed to set document", err)
	}
	return nil
}

func (g *firestoreGateway) Delete(ctx context.Context, collection, key string) error {
	_, err := g.client.Collection(collection).Doc(key).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete document", err)
	}
	return nil
}

func (g *firestoreGateway) List(ctx context.Context, collection string) (map[string][]byte, error) {
	iter := g.client.Collection(collection).Documents(ctx)
	docs := make(map[string][]byte)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate documents", err)
		}

		data, err := json.Marshal(doc.Data())
		if err != nil {
			return nil, errors.Internal("Failed to encode document data", err)
		}
		docs[doc.Ref.ID] = data
	}

	return docs, nil
}
