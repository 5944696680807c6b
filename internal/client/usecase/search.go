package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/fekuna/termas-hotel-service/internal/model"
	"go.uber.org/zap"
)

const clientIndex = "clients"

const clientMapping = `{
	"mappings": {
		"properties": {
			"type": { "type": "keyword" },
			"name": { "type": "text" },
			"last_name": { "type": "text" },
			"rut": { "type": "keyword" },
			"email": { "type": "keyword" },
			"phone": { "type": "keyword" },
			"status": { "type": "keyword" },
			"is_frequent": { "type": "boolean" },
			"created_at": { "type": "date" }
		}
	}
}`

var ensureIndex sync.Once

func (uc *clientUseCase) SearchClients(ctx context.Context, query string, limit int) ([]model.Client, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Client{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":     query,
					"fields":    []string{"name^3", "last_name^2", "rut", "email", "phone"},
					"fuzziness": "AUTO",
				},
			},
			"size": limit,
		}
		res, err := uc.es.Search(ctx, clientIndex, q)
		if err == nil {
			clients := make([]model.Client, 0, len(res.Hits.Hits))
			for _, hit := range res.Hits.Hits {
				var c model.Client
				if err := json.Unmarshal(hit.Source, &c); err == nil {
					clients = append(clients, c)
				}
			}
			return clients, nil
		}
		uc.logger.Error("client search failed, falling back to DB", zap.Error(err))
	}

	return uc.repo.Search(ctx, query, limit)
}

// index pushes c to the search index in the background.
func (uc *clientUseCase) index(c *model.Client) {
	if uc.es == nil {
		return
	}
	doc := *c
	go func() {
		ctx := context.Background()
		ensureIndex.Do(func() {
			if err := uc.es.CreateIndex(ctx, clientIndex, clientMapping); err != nil {
				uc.logger.Warn("failed to create client index", zap.Error(err))
			}
		})
		if err := uc.es.Index(ctx, clientIndex, doc.ID, doc); err != nil {
			uc.logger.Error("failed to index client", zap.String("client_id", doc.ID), zap.Error(err))
		}
	}()
}

func (uc *clientUseCase) unindex(id string) {
	if uc.es == nil {
		return
	}
	go func() {
		if err := uc.es.Delete(context.Background(), clientIndex, id); err != nil {
			uc.logger.Error("failed to remove client from index", zap.String("client_id", id), zap.Error(err))
		}
	}()
}
