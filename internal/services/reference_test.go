package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceService(t *testing.T) {
	db, m := newStore(t)
	s := NewReferenceService(db, m)
	ctx := context.Background()

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "Clothing", cats[0].Name)

	statuses, err := s.Statuses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.Equal(t, []string{"Received", "In Process", "Delivered"},
		[]string{statuses[0].Name, statuses[1].Name, statuses[2].Name})
}
