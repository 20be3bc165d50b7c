// Package qdrant provides a vector index adapter backed by a Qdrant server
// over gRPC. Chunks are stored one point each, carrying the page title and
// text as payload so a page can be selectively re-indexed.
package qdrant

import (
	"context"
	"fmt"

	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/revisehq/revise-cli/internal/core/domain"
	"github.com/revisehq/revise-cli/internal/core/ports/driven"
	"github.com/revisehq/revise-cli/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Payload keys stored with every point.
const (
	payloadTitle    = "page_title"
	payloadText     = "text"
	payloadPosition = "position"
)

// DefaultCollection is the collection name when none is configured.
const DefaultCollection = "revise_notes"

// Config holds connection details for the Qdrant server.
type Config struct {
	// Address is the host:port of the gRPC endpoint (required).
	Address string

	// Collection is the collection name (default: revise_notes).
	Collection string
}

// Index is a VectorIndex over a Qdrant collection.
type Index struct {
	conn        *grpc.ClientConn
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	collection  string
}

// New connects to a Qdrant server. The connection is lazy; failures surface
// on the first operation.
func New(cfg Config) (*Index, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("qdrant: address is required")
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	conn, err := grpc.NewClient(cfg.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("qdrant: connect to %s: %w", cfg.Address, err)
	}

	return &Index{
		conn:        conn,
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		collection:  cfg.Collection,
	}, nil
}

// EnsureCollection creates the collection with the given dimension and
// cosine distance if it does not already exist.
func (i *Index) EnsureCollection(ctx context.Context, dimensions int) error {
	list, err := i.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("qdrant: list collections: %w", err)
	}

	for _, col := range list.GetCollections() {
		if col.GetName() == i.collection {
			return nil
		}
	}

	logger.Info("creating qdrant collection %s (dim=%d, cosine)", i.collection, dimensions)
	_, err = i.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: i.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     uint64(dimensions),
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("qdrant: create collection %s: %w", i.collection, err)
	}
	return nil
}

// DeleteByTitle removes every point whose page_title payload equals title.
func (i *Index) DeleteByTitle(ctx context.Context, pageTitle string) error {
	wait := true
	_, err := i.points.Delete(ctx, &qdrantclient.DeletePoints{
		CollectionName: i.collection,
		Wait:           &wait,
		Points: &qdrantclient.PointsSelector{
			PointsSelectorOneOf: &qdrantclient.PointsSelector_Filter{
				Filter: titleFilter(pageTitle),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("qdrant: delete points for %q: %w", pageTitle, err)
	}
	return nil
}

// Upsert inserts chunks with their embeddings and payload.
func (i *Index) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	points := make([]*qdrantclient.PointStruct, len(chunks))
	for n, chunk := range chunks {
		points[n] = &qdrantclient.PointStruct{
			Id: &qdrantclient.PointId{
				PointIdOptions: &qdrantclient.PointId_Uuid{Uuid: chunk.ID},
			},
			Vectors: &qdrantclient.Vectors{
				VectorsOptions: &qdrantclient.Vectors_Vector{
					Vector: &qdrantclient.Vector{Data: chunk.Embedding},
				},
			},
			Payload: map[string]*qdrantclient.Value{
				payloadTitle:    stringValue(chunk.PageTitle),
				payloadText:     stringValue(chunk.Content),
				payloadPosition: integerValue(int64(chunk.Position)),
			},
		}
	}

	wait := true
	_, err := i.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: i.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("qdrant: upsert %d points: %w", len(points), err)
	}
	return nil
}

// Search returns the k points most similar to the query embedding.
func (i *Index) Search(ctx context.Context, embedding []float32, k int) ([]domain.ScoredChunk, error) {
	resp, err := i.points.Search(ctx, &qdrantclient.SearchPoints{
		CollectionName: i.collection,
		Vector:         embedding,
		Limit:          uint64(k),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: search: %w", err)
	}

	hits := make([]domain.ScoredChunk, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		payload := point.GetPayload()
		hits = append(hits, domain.ScoredChunk{
			Chunk: domain.Chunk{
				ID:        point.GetId().GetUuid(),
				PageTitle: payload[payloadTitle].GetStringValue(),
				Content:   payload[payloadText].GetStringValue(),
				Position:  int(payload[payloadPosition].GetIntegerValue()),
			},
			Score: float64(point.GetScore()),
		})
	}
	return hits, nil
}

// Close releases the gRPC connection.
func (i *Index) Close() error {
	return i.conn.Close()
}

func titleFilter(pageTitle string) *qdrantclient.Filter {
	return &qdrantclient.Filter{
		Must: []*qdrantclient.Condition{
			{
				ConditionOneOf: &qdrantclient.Condition_Field{
					Field: &qdrantclient.FieldCondition{
						Key: payloadTitle,
						Match: &qdrantclient.Match{
							MatchValue: &qdrantclient.Match_Keyword{Keyword: pageTitle},
						},
					},
				},
			},
		},
	}
}

func stringValue(s string) *qdrantclient.Value {
	return &qdrantclient.Value{Kind: &qdrantclient.Value_StringValue{StringValue: s}}
}

func integerValue(n int64) *qdrantclient.Value {
	return &qdrantclient.Value{Kind: &qdrantclient.Value_IntegerValue{IntegerValue: n}}
}
