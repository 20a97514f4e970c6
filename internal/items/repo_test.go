package items

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/beggy/beggy-backend/pkg/db/dbtest"
	"github.com/beggy/beggy-backend/pkg/db/models"
	"github.com/beggy/beggy-backend/pkg/enums"
	"github.com/beggy/beggy-backend/pkg/pagination"
)

func seedOwner(t *testing.T, conn *gorm.DB) uuid.UUID {
	t.Helper()
	user := &models.User{Email: uuid.NewString() + "@example.com", PasswordHash: "x", FirstName: "a", LastName: "b"}
	require.NoError(t, conn.Create(user).Error)
	return user.ID
}

func seedContainer(t *testing.T, conn *gorm.DB, ownerID uuid.UUID) uuid.UUID {
	t.Helper()
	c := &models.Container{UserID: ownerID, Kind: enums.ContainerKindBag, Name: uuid.NewString(), MaxWeight: 10, MaxCapacity: 20}
	require.NoError(t, conn.Create(c).Error)
	return c.ID
}

func newItem(ownerID uuid.UUID, name string, category enums.ItemCategory) *models.Item {
	return &models.Item{
		UserID:     ownerID,
		Name:       name,
		Category:   category,
		Weight:     1,
		WeightUnit: enums.WeightUnitKilogram,
		Volume:     1,
		VolumeUnit: enums.VolumeUnitLiter,
	}
}

func TestRepositoryListFilters(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	owner := seedOwner(t, conn)
	containerID := seedContainer(t, conn, owner)

	shirt := newItem(owner, "shirt", enums.ItemCategoryClothing)
	charger := newItem(owner, "charger", enums.ItemCategoryElectronics)
	charger.ContainerID = &containerID
	for _, item := range []*models.Item{shirt, charger} {
		require.NoError(t, repo.Create(ctx, item))
		time.Sleep(2 * time.Millisecond)
	}
	require.NoError(t, repo.Create(ctx, newItem(seedOwner(t, conn), "stranger", enums.ItemCategoryClothing)))

	all, err := repo.List(ctx, owner, ListFilters{}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	require.Equal(t, "charger", all.Items[0].Name)

	clothing := enums.ItemCategoryClothing
	byCategory, err := repo.List(ctx, owner, ListFilters{Category: &clothing}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, byCategory.Items, 1)
	require.Equal(t, "shirt", byCategory.Items[0].Name)

	unassigned, err := repo.List(ctx, owner, ListFilters{Unassigned: true}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, unassigned.Items, 1)
	require.Equal(t, shirt.ID, unassigned.Items[0].ID)

	inContainer, err := repo.List(ctx, owner, ListFilters{ContainerID: &containerID}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, inContainer.Items, 1)
	require.Equal(t, charger.ID, inContainer.Items[0].ID)
}

func TestRepositoryAssignment(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	owner := seedOwner(t, conn)
	first := seedContainer(t, conn, owner)
	second := seedContainer(t, conn, owner)

	item := newItem(owner, "boots", enums.ItemCategoryFootwear)
	require.NoError(t, repo.Create(ctx, item))

	require.NoError(t, repo.SetContainer(ctx, owner, item.ID, &first))
	rows, err := repo.ListByContainer(ctx, first)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, repo.SetContainer(ctx, owner, item.ID, &second))
	rows, err = repo.ListByContainer(ctx, first)
	require.NoError(t, err)
	require.Empty(t, rows)

	grouped, err := repo.ListByContainers(ctx, []uuid.UUID{first, second})
	require.NoError(t, err)
	require.Len(t, grouped[second], 1)
	require.Empty(t, grouped[first])

	require.NoError(t, repo.UnassignAll(ctx, second))
	reloaded, err := repo.FindByID(ctx, owner, item.ID)
	require.NoError(t, err)
	require.Nil(t, reloaded.ContainerID)

	require.ErrorIs(t, repo.SetContainer(ctx, uuid.New(), item.ID, &first), gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateAndDelete(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	owner := seedOwner(t, conn)

	item := newItem(owner, "laptop", enums.ItemCategoryElectronics)
	require.NoError(t, repo.Create(ctx, item))

	item.Weight = 1800
	item.WeightUnit = enums.WeightUnitGram
	require.NoError(t, repo.Update(ctx, item))

	reloaded, err := repo.FindByID(ctx, owner, item.ID)
	require.NoError(t, err)
	require.Equal(t, 1800.0, reloaded.Weight)
	require.Equal(t, enums.WeightUnitGram, reloaded.WeightUnit)

	require.ErrorIs(t, repo.Delete(ctx, uuid.New(), item.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.Delete(ctx, owner, item.ID))
	_, err = repo.FindByID(ctx, owner, item.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
