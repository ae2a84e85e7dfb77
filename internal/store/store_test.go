package store

import (
	"context"
	"errors"
	"testing"

	"producthunt/ingest-service/internal/model"
)

func TestDisabledSinkReportsNotConfigured(t *testing.T) {
	var sink Disabled
	err := sink.Upsert(context.Background(), model.Product{ID: "p1", Name: "Widget"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Disabled.Upsert error = %v, want ErrNotConfigured", err)
	}
}
