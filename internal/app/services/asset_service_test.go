package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
)

type fakeAssetStore struct {
	assets      []*models.InfrastructureAsset
	nextID      int64
	createCalls int
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{nextID: 1}
}

func (f *fakeAssetStore) Create(ctx context.Context, asset *models.InfrastructureAsset) error {
	f.createCalls++
	asset.ID = f.nextID
	f.nextID++
	f.assets = append(f.assets, asset)
	return nil
}

func (f *fakeAssetStore) GetByID(ctx context.Context, id int64) (*models.InfrastructureAsset, error) {
	for _, a := range f.assets {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.ErrAssetNotFound
}

func (f *fakeAssetStore) GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.InfrastructureAsset, error) {
	var out []*models.InfrastructureAsset
	for _, a := range f.assets {
		if a.InstitutionID == institutionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssetStore) Update(ctx context.Context, asset *models.InfrastructureAsset) error {
	for i, a := range f.assets {
		if a.ID == asset.ID {
			f.assets[i] = asset
			return nil
		}
	}
	return apperrors.ErrAssetNotFound
}

func (f *fakeAssetStore) Delete(ctx context.Context, id int64) error {
	for i, a := range f.assets {
		if a.ID == id {
			f.assets = append(f.assets[:i], f.assets[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAssetNotFound
}

func validAsset() *dto.CreateAssetRequest {
	return &dto.CreateAssetRequest{
		Name:            "Classroom Block A",
		AssetType:       "Building",
		Classification:  "Permanent",
		AcquisitionYear: 2018,
		Quantity:        1,
		Condition:       "GOOD",
	}
}

func TestCreateAsset(t *testing.T) {
	store := newFakeAssetStore()
	svc := NewAssetService(store)

	asset, err := svc.CreateAsset(context.Background(), 1, validAsset())

	require.NoError(t, err)
	assert.Equal(t, int64(1), asset.InstitutionID)
	assert.Equal(t, "Classroom Block A", asset.Name)
}

func TestCreateAsset_ValidationFailureNeverHitsStore(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.CreateAssetRequest)
	}{
		{"empty name", func(r *dto.CreateAssetRequest) { r.Name = " " }},
		{"empty type", func(r *dto.CreateAssetRequest) { r.AssetType = "" }},
		{"empty classification", func(r *dto.CreateAssetRequest) { r.Classification = "" }},
		{"zero quantity", func(r *dto.CreateAssetRequest) { r.Quantity = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeAssetStore()
			svc := NewAssetService(store)

			req := validAsset()
			tc.mutate(req)
			_, err := svc.CreateAsset(context.Background(), 1, req)

			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Zero(t, store.createCalls)
		})
	}
}

func TestListAssets_ConditionFilter(t *testing.T) {
	store := newFakeAssetStore()
	svc := NewAssetService(store)

	add := func(name, condition string) {
		req := validAsset()
		req.Name = name
		req.Condition = condition
		_, err := svc.CreateAsset(context.Background(), 1, req)
		require.NoError(t, err)
	}
	add("Classroom Block A", "GOOD")
	add("Pit Latrine", "POOR")
	add("Water Tank", "GOOD")

	assets, _, err := svc.ListAssets(context.Background(), 1, &dto.AssetFilterRequest{
		Condition: "poor",
	}, 1, 20)

	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Pit Latrine", assets[0].Name)
}

func TestListAssets_SearchMatchesType(t *testing.T) {
	store := newFakeAssetStore()
	svc := NewAssetService(store)

	add := func(name, assetType string) {
		req := validAsset()
		req.Name = name
		req.AssetType = assetType
		_, err := svc.CreateAsset(context.Background(), 1, req)
		require.NoError(t, err)
	}
	add("Block A", "Building")
	add("Workshop Lathe", "Equipment")

	assets, _, err := svc.ListAssets(context.Background(), 1, &dto.AssetFilterRequest{
		Search: "equip",
	}, 1, 20)

	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Workshop Lathe", assets[0].Name)
}

func TestAssetByID_OtherInstitutionIsNotFound(t *testing.T) {
	store := newFakeAssetStore()
	svc := NewAssetService(store)

	asset, err := svc.CreateAsset(context.Background(), 1, validAsset())
	require.NoError(t, err)

	_, err = svc.GetAssetByID(context.Background(), 2, asset.ID)
	assert.ErrorIs(t, err, apperrors.ErrAssetNotFound)

	err = svc.DeleteAsset(context.Background(), 2, asset.ID)
	assert.ErrorIs(t, err, apperrors.ErrAssetNotFound)
	assert.Len(t, store.assets, 1, "the other institution's asset must survive")
}

func TestUpdateAsset_NotFound(t *testing.T) {
	svc := NewAssetService(newFakeAssetStore())

	req := validAsset()
	_, err := svc.UpdateAsset(context.Background(), 1, 42, &dto.UpdateAssetRequest{
		Name:            req.Name,
		AssetType:       req.AssetType,
		Classification:  req.Classification,
		AcquisitionYear: req.AcquisitionYear,
		Quantity:        req.Quantity,
		Condition:       req.Condition,
	})

	assert.ErrorIs(t, err, apperrors.ErrAssetNotFound)
}
