package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
)

const (
	defaultSize = 10
	maxSize     = 50
	callTimeout = 3 * time.Second
)

const mentorsMapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "name":       {"type": "text"},
      "email":      {"type": "keyword"},
      "bio":        {"type": "text"},
      "avatar_url": {"type": "keyword", "index": false},
      "expertise":  {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "updated_at": {"type": "date"}
    }
  }
}`

// MentorIndex keeps active mentors searchable by name, expertise and bio.
type MentorIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewMentorIndex(es *elasticsearch.Client, index string) *MentorIndex {
	return &MentorIndex{ES: es, Index: index}
}

type mentorDoc struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Bio       string   `json:"bio,omitempty"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	Expertise []string `json:"expertise"`
	UpdatedAt string   `json:"updated_at"`
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (m *MentorIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	res, err := m.ES.Indices.Exists([]string{m.Index}, m.ES.Indices.Exists.WithContext(c))
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	res, err = m.ES.Indices.Create(m.Index,
		m.ES.Indices.Create.WithContext(c),
		m.ES.Indices.Create.WithBody(strings.NewReader(mentorsMapping)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

// Upsert indexes an active mentor. Mentees and inactive users are removed instead.
func (m *MentorIndex) Upsert(ctx context.Context, u *entity.User) error {
	l, ok := u.Listing()
	if !ok || !u.IsActive {
		return m.Remove(ctx, u.ID)
	}
	b, err := json.Marshal(mentorDoc{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		Bio:       l.Bio,
		AvatarURL: l.AvatarURL,
		Expertise: l.Expertise,
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: m.Index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	res, err := req.Do(c, m.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return responseError("index mentor", res)
	}
	return nil
}

// Remove deletes a document; a missing document is not an error.
func (m *MentorIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: m.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	res, err := req.Do(c, m.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("remove mentor", res)
	}
	return nil
}

// Search runs a multi_match over expertise, name and bio. An empty query lists mentors.
func (m *MentorIndex) Search(ctx context.Context, q string, size int) ([]entity.MentorListing, error) {
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	query := map[string]any{"match_all": map[string]any{}}
	if q = strings.TrimSpace(q); q != "" {
		query = map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"expertise^3", "name^2", "bio"},
				"fuzziness": "AUTO",
			},
		}
	}
	b, err := json.Marshal(map[string]any{"query": query, "size": size})
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	res, err := m.ES.Search(
		m.ES.Search.WithContext(c),
		m.ES.Search.WithIndex(m.Index),
		m.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == http.StatusNotFound {
		return []entity.MentorListing{}, nil
	}
	if res.IsError() {
		return nil, responseError("search mentors", res)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source mentorDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.MentorListing, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		out = append(out, entity.MentorListing{
			ID:        d.ID,
			Name:      d.Name,
			Email:     d.Email,
			Bio:       d.Bio,
			AvatarURL: d.AvatarURL,
			Expertise: d.Expertise,
		})
	}
	return out, nil
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("elasticsearch %s: %s: %s", op, res.Status(), strings.TrimSpace(string(body)))
}
