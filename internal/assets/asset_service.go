package assets

import (
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/sirdav1d/geosapiens-challenge/pkg/apperrors"
	"github.com/sirdav1d/geosapiens-challenge/pkg/models"
)

// AssetsStore is the persistence surface the service works against.
type AssetsStore interface {
	ListAssets(q *ListQuery) ([]models.Asset, int64, error)
	GetAsset(tx *goqu.TxDatabase, id int64) (*models.Asset, error)
	SerialExists(tx *goqu.TxDatabase, serialNumber string, excludeID int64) (bool, error)
	InsertAsset(tx *goqu.TxDatabase, req models.AssetRequest) (*models.Asset, error)
	UpdateAsset(tx *goqu.TxDatabase, id int64, req models.AssetRequest) (*models.Asset, error)
	DeleteAsset(tx *goqu.TxDatabase, id int64) (bool, error)
	InTransaction(fn func(tx *goqu.TxDatabase) error) error
}

type AssetService struct {
	store AssetsStore
}

func NewAssetService(store AssetsStore) *AssetService {
	return &AssetService{
		store: store,
	}
}

func (s *AssetService) Search(q *ListQuery) (models.AssetsPage, error) {
	items, total, err := s.store.ListAssets(q)
	if err != nil {
		return models.AssetsPage{}, err
	}

	return models.NewAssetsPage(items, q.Page, q.Size, total), nil
}

// Create persists a new asset. The serial number pre-check and the insert
// share one transaction; a unique violation raised by the insert itself (a
// concurrent writer won the race) is reclassified to the same conflict the
// pre-check produces.
func (s *AssetService) Create(req models.AssetRequest) (*models.Asset, error) {
	var created *models.Asset

	err := s.store.InTransaction(func(tx *goqu.TxDatabase) error {
		taken, err := s.store.SerialExists(tx, req.SerialNumber, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewSerialConflict(req.SerialNumber)
		}

		created, err = s.store.InsertAsset(tx, req)
		return err
	})
	if err != nil {
		return nil, reclassifyUniqueViolation(err, req.SerialNumber)
	}

	return created, nil
}

// Update replaces all business fields of an existing asset. Keeping the
// asset's own serial number is allowed; taking another asset's is a conflict.
func (s *AssetService) Update(id int64, req models.AssetRequest) (*models.Asset, error) {
	var updated *models.Asset

	err := s.store.InTransaction(func(tx *goqu.TxDatabase) error {
		existing, err := s.store.GetAsset(tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperrors.NewNotFound(id)
		}

		taken, err := s.store.SerialExists(tx, req.SerialNumber, id)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewSerialConflict(req.SerialNumber)
		}

		updated, err = s.store.UpdateAsset(tx, id, req)
		if err != nil {
			return err
		}
		if updated == nil {
			return apperrors.NewNotFound(id)
		}
		return nil
	})
	if err != nil {
		return nil, reclassifyUniqueViolation(err, req.SerialNumber)
	}

	return updated, nil
}

func (s *AssetService) Delete(id int64) error {
	return s.store.InTransaction(func(tx *goqu.TxDatabase) error {
		deleted, err := s.store.DeleteAsset(tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperrors.NewNotFound(id)
		}
		return nil
	})
}

// reclassifyUniqueViolation turns the storage adapter's unique constraint
// condition into the domain conflict. Any other failure passes through as a
// generic storage fault.
func reclassifyUniqueViolation(err error, serialNumber string) error {
	var unique *apperrors.UniqueViolationError
	if errors.As(err, &unique) {
		return apperrors.NewSerialConflict(serialNumber)
	}
	return err
}
