package alias

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestService_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		FindCanonical(gomock.Any(), "PARA 500 TAB").
		Return("Paracetamol 500mg", nil)

	got, err := svc.Suggest(context.Background(), "PARA 500 TAB")
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500mg", got)
}

func TestService_Suggest_NoMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		FindCanonical(gomock.Any(), "UNKNOWN ITEM").
		Return("", nil)

	got, err := svc.Suggest(context.Background(), "UNKNOWN ITEM")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().
		CreateAlias(gomock.Any(), "PARA 500", "Paracetamol 500mg").
		Return(nil)

	require.NoError(t, svc.Learn(context.Background(), "PARA 500", "Paracetamol 500mg"))
}
