package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-note-sync/models"
)

// httpTable implements [RemoteTable] over the REST collection at path.
type httpTable[T models.Syncable[T]] struct {
	adapter *httpServerAdapter
	path    string
	kind    models.EntityKind
}

func (t *httpTable[T]) op(verb string) string {
	return verb + " " + string(t.kind)
}

func (t *httpTable[T]) List(ctx context.Context, ownerID int64) ([]T, error) {
	req, err := t.adapter.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.SetQueryParam("user_id", formatOwner(ownerID)).Get(t.path)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", t.op("list"), err)
	}
	if err = t.adapter.checkResponse(t.op("list"), resp); err != nil {
		return nil, err
	}

	var items []T
	if err = json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", t.op("list"), err)
	}
	return items, nil
}

func (t *httpTable[T]) Get(ctx context.Context, ownerID int64, id string) (T, error) {
	var item T

	req, err := t.adapter.authedRequest(ctx)
	if err != nil {
		return item, err
	}

	resp, err := req.
		SetPathParam("id", id).
		SetQueryParam("user_id", formatOwner(ownerID)).
		Get(t.path + "/{id}")
	if err != nil {
		return item, fmt.Errorf("%s request: %w", t.op("get"), err)
	}
	if err = t.adapter.checkResponse(t.op("get"), resp); err != nil {
		return item, err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return item, fmt.Errorf("decode %s response: empty body", t.op("get"))
	}
	if err = json.Unmarshal(body, &item); err != nil {
		return item, fmt.Errorf("decode %s response: %w", t.op("get"), err)
	}
	return item, nil
}

func (t *httpTable[T]) Insert(ctx context.Context, item T) error {
	return t.write(ctx, "insert", item, false)
}

func (t *httpTable[T]) Update(ctx context.Context, item T) error {
	return t.write(ctx, "update", item, true)
}

func (t *httpTable[T]) write(ctx context.Context, verb string, item T, byID bool) error {
	req, err := t.adapter.authedRequest(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", t.op(verb), err)
	}
	req = t.adapter.withBody(req, payload, contentTypeJSON)

	if byID {
		req.SetPathParam("id", item.Meta().ID)
		resp, err := req.Put(t.path + "/{id}")
		if err != nil {
			return fmt.Errorf("%s request: %w", t.op(verb), err)
		}
		return t.adapter.checkResponse(t.op(verb), resp)
	}

	resp, err := req.Post(t.path)
	if err != nil {
		return fmt.Errorf("%s request: %w", t.op(verb), err)
	}
	return t.adapter.checkResponse(t.op(verb), resp)
}

func (t *httpTable[T]) Delete(ctx context.Context, ownerID int64, id string) error {
	req, err := t.adapter.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetPathParam("id", id).
		SetQueryParam("user_id", formatOwner(ownerID)).
		Delete(t.path + "/{id}")
	if err != nil {
		return fmt.Errorf("%s request: %w", t.op("delete"), err)
	}
	return t.adapter.checkResponse(t.op("delete"), resp)
}
