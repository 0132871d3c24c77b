package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adrianliechti/contentkit/pkg/index"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var _ index.Provider = &Client{}

const DefaultBucket = "documents"

// Client persists documents as JSON values in a bbolt bucket keyed by id.
type Client struct {
	db *bbolt.DB

	bucket []byte
}

type Option func(*Client)

func WithBucket(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.bucket = []byte(name)
		}
	}
}

func New(path string, options ...Option) (*Client, error) {
	if path == "" {
		return nil, errors.New("invalid path")
	}

	c := &Client{
		bucket: []byte(DefaultBucket),
	}

	for _, option := range options {
		option(c)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})

	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(c.bucket)
		return err
	})

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	c.db = db

	return c, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) List(ctx context.Context, options *index.ListOptions) (*index.Page[index.Document], error) {
	if options == nil {
		options = new(index.ListOptions)
	}

	page := &index.Page[index.Document]{}

	err := c.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(c.bucket).Cursor()

		k, v := cursor.First()

		if options.Cursor != "" {
			k, v = cursor.Seek([]byte(options.Cursor))

			if k != nil && string(k) == options.Cursor {
				k, v = cursor.Next()
			}
		}

		for ; k != nil; k, v = cursor.Next() {
			if options.Limit != nil && *options.Limit > 0 && len(page.Items) == *options.Limit {
				page.Cursor = page.Items[len(page.Items)-1].ID
				break
			}

			var d index.Document

			if err := json.Unmarshal(v, &d); err != nil {
				return fmt.Errorf("unmarshaling document %s: %w", k, err)
			}

			page.Items = append(page.Items, d)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return page, nil
}

func (c *Client) Index(ctx context.Context, documents ...index.Document) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(c.bucket)

		for _, d := range documents {
			if err := ctx.Err(); err != nil {
				return err
			}

			if d.ID == "" {
				d.ID = uuid.NewString()
			}

			if d.IndexedAt.IsZero() {
				d.IndexedAt = time.Now().UTC()
			}

			data, err := json.Marshal(d)

			if err != nil {
				return fmt.Errorf("marshaling document: %w", err)
			}

			if err := bucket.Put([]byte(d.ID), data); err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Client) Delete(ctx context.Context, ids ...string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(c.bucket)

		for _, id := range ids {
			if err := bucket.Delete([]byte(id)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Client) Query(ctx context.Context, query string, options *index.QueryOptions) ([]index.Result, error) {
	var documents []index.Document

	err := c.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(c.bucket).ForEach(func(k, v []byte) error {
			var d index.Document

			if err := json.Unmarshal(v, &d); err != nil {
				return fmt.Errorf("unmarshaling document %s: %w", k, err)
			}

			documents = append(documents, d)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return index.Rank(query, documents, options), nil
}
