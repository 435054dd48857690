package assets

import (
	"errors"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sirdav1d/geosapiens-challenge/pkg/apperrors"
	"github.com/sirdav1d/geosapiens-challenge/pkg/models"
)

// MockAssetsStore is a mock implementation of AssetsStore. InTransaction
// invokes the callback with a nil tx so the transactional flow runs without
// a database.
type MockAssetsStore struct {
	mock.Mock
}

func (m *MockAssetsStore) ListAssets(q *ListQuery) ([]models.Asset, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Asset), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssetsStore) GetAsset(tx *goqu.TxDatabase, id int64) (*models.Asset, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetsStore) SerialExists(tx *goqu.TxDatabase, serialNumber string, excludeID int64) (bool, error) {
	args := m.Called(tx, serialNumber, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetsStore) InsertAsset(tx *goqu.TxDatabase, req models.AssetRequest) (*models.Asset, error) {
	args := m.Called(tx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetsStore) UpdateAsset(tx *goqu.TxDatabase, id int64, req models.AssetRequest) (*models.Asset, error) {
	args := m.Called(tx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetsStore) DeleteAsset(tx *goqu.TxDatabase, id int64) (bool, error) {
	args := m.Called(tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetsStore) InTransaction(fn func(tx *goqu.TxDatabase) error) error {
	args := m.Called(fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

func newServiceWithStore() (*AssetService, *MockAssetsStore) {
	store := new(MockAssetsStore)
	store.On("InTransaction", mock.Anything).Return(nil).Maybe()
	return NewAssetService(store), store
}

func serviceRequest() models.AssetRequest {
	date := models.NewDate(2024, time.January, 10)
	return models.AssetRequest{
		Name:            "Switch 24p",
		SerialNumber:    "SN-100",
		Category:        "NETWORK_EQUIPMENT",
		Status:          "IN_STOCK",
		AcquisitionDate: &date,
	}
}

func TestCreatePersistsWhenSerialIsFree(t *testing.T) {
	service, store := newServiceWithStore()
	req := serviceRequest()
	persisted := &models.Asset{ID: 7, SerialNumber: req.SerialNumber}

	store.On("SerialExists", mock.Anything, "SN-100", int64(0)).Return(false, nil)
	store.On("InsertAsset", mock.Anything, req).Return(persisted, nil)

	asset, err := service.Create(req)

	assert.NoError(t, err)
	assert.Equal(t, persisted, asset)
	store.AssertExpectations(t)
}

func TestCreateFailsFastOnPreCheckConflict(t *testing.T) {
	service, store := newServiceWithStore()
	req := serviceRequest()

	store.On("SerialExists", mock.Anything, "SN-100", int64(0)).Return(true, nil)

	_, err := service.Create(req)

	var conflict *apperrors.SerialConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "SN-100", conflict.SerialNumber)
	store.AssertNotCalled(t, "InsertAsset", mock.Anything, mock.Anything)
}

func TestCreateReclassifiesRaceToConflict(t *testing.T) {
	service, store := newServiceWithStore()
	req := serviceRequest()

	// The pre-check passed, but a concurrent writer inserted the same serial
	// before our insert hit the constraint.
	raceErr := apperrors.WrapDBError(&pq.Error{Code: "23505", Constraint: apperrors.SerialNumberConstraint})
	store.On("SerialExists", mock.Anything, "SN-100", int64(0)).Return(false, nil)
	store.On("InsertAsset", mock.Anything, req).Return(nil, raceErr)

	_, err := service.Create(req)

	var conflict *apperrors.SerialConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "SN-100", conflict.SerialNumber)
}

func TestCreatePropagatesOtherStorageFaults(t *testing.T) {
	service, store := newServiceWithStore()
	req := serviceRequest()

	storageErr := errors.New("connection reset")
	store.On("SerialExists", mock.Anything, "SN-100", int64(0)).Return(false, nil)
	store.On("InsertAsset", mock.Anything, req).Return(nil, storageErr)

	_, err := service.Create(req)

	assert.Equal(t, storageErr, err)
	var conflict *apperrors.SerialConflictError
	assert.False(t, errors.As(err, &conflict))
}

func TestUpdateFailsWhenAssetMissing(t *testing.T) {
	service, store := newServiceWithStore()

	store.On("GetAsset", mock.Anything, int64(99)).Return(nil, nil)

	_, err := service.Update(99, serviceRequest())

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(99), notFound.ID)
	store.AssertNotCalled(t, "UpdateAsset", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateConflictsWhenSerialHeldByAnotherAsset(t *testing.T) {
	service, store := newServiceWithStore()
	req := serviceRequest()

	store.On("GetAsset", mock.Anything, int64(5)).Return(&models.Asset{ID: 5}, nil)
	store.On("SerialExists", mock.Anything, "SN-100", int64(5)).Return(true, nil)

	_, err := service.Update(5, req)

	var conflict *apperrors.SerialConflictError
	assert.ErrorAs(t, err, &conflict)
	store.AssertNotCalled(t, "UpdateAsset", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateKeepingOwnSerialSucceeds(t *testing.T) {
	service, store := newServiceWithStore()
	req := serviceRequest()
	updated := &models.Asset{ID: 5, SerialNumber: req.SerialNumber}

	store.On("GetAsset", mock.Anything, int64(5)).Return(&models.Asset{ID: 5, SerialNumber: "SN-100"}, nil)
	// Excluding the asset's own id means its unchanged serial is not a hit.
	store.On("SerialExists", mock.Anything, "SN-100", int64(5)).Return(false, nil)
	store.On("UpdateAsset", mock.Anything, int64(5), req).Return(updated, nil)

	asset, err := service.Update(5, req)

	assert.NoError(t, err)
	assert.Equal(t, updated, asset)
	store.AssertExpectations(t)
}

func TestUpdateReclassifiesRaceToConflict(t *testing.T) {
	service, store := newServiceWithStore()
	req := serviceRequest()

	raceErr := apperrors.WrapDBError(&pq.Error{Code: "23505"})
	store.On("GetAsset", mock.Anything, int64(5)).Return(&models.Asset{ID: 5}, nil)
	store.On("SerialExists", mock.Anything, "SN-100", int64(5)).Return(false, nil)
	store.On("UpdateAsset", mock.Anything, int64(5), req).Return(nil, raceErr)

	_, err := service.Update(5, req)

	var conflict *apperrors.SerialConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestDeleteRemovesExistingAsset(t *testing.T) {
	service, store := newServiceWithStore()

	store.On("DeleteAsset", mock.Anything, int64(3)).Return(true, nil)

	assert.NoError(t, service.Delete(3))
}

func TestDeleteFailsWhenAssetMissing(t *testing.T) {
	service, store := newServiceWithStore()

	store.On("DeleteAsset", mock.Anything, int64(3)).Return(false, nil)

	err := service.Delete(3)

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSearchBuildsPageFromQuery(t *testing.T) {
	service, store := newServiceWithStore()
	query := &ListQuery{Page: 1, Size: 10, Sort: []SortOrder{{Column: "id", Descending: true}}}
	items := []models.Asset{{ID: 20}, {ID: 19}}

	store.On("ListAssets", query).Return(items, int64(25), nil)

	page, err := service.Search(query)

	assert.NoError(t, err)
	assert.Equal(t, items, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, int64(25), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
}
