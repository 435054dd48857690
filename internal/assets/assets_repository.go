package assets

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/sirdav1d/geosapiens-challenge/internal/repository"
	"github.com/sirdav1d/geosapiens-challenge/pkg/apperrors"
	"github.com/sirdav1d/geosapiens-challenge/pkg/models"
)

const assetsTable = "assets"

var assetColumns = []interface{}{
	"id",
	"name",
	"serial_number",
	"category",
	"status",
	"acquisition_date",
	"created_at",
	"updated_at",
}

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

// InTransaction runs fn inside a single unit of work. Write paths wrap their
// pre-check and write in one call so both sit behind the same boundary.
func (r *AssetsRepository) InTransaction(fn func(tx *goqu.TxDatabase) error) error {
	return repository.WithTransaction(r.repository.GoquDBWrapper, fn)
}

// ListAssets performs the filtered, sorted, paginated read described by a
// canonical list query, returning the page of assets and the unpaged total.
func (r *AssetsRepository) ListAssets(q *ListQuery) ([]models.Asset, int64, error) {
	base := r.repository.GoquDBWrapper.From(assetsTable).Where(q.conditions()...)

	var total int64
	if _, err := base.Select(goqu.COUNT(goqu.Star())).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count assets: %w", err)
	}

	query := base.
		Select(assetColumns...).
		Order(q.orders()...).
		Limit(uint(q.Size)).
		Offset(uint(q.Page * q.Size))

	var assets []models.Asset
	if err := query.Executor().ScanStructs(&assets); err != nil {
		return nil, 0, fmt.Errorf("unable to select assets from database: %w", err)
	}

	return assets, total, nil
}

// GetAsset fetches one asset by id, returning nil when it does not exist.
// A nil tx reads outside any transaction.
func (r *AssetsRepository) GetAsset(tx *goqu.TxDatabase, id int64) (*models.Asset, error) {
	query := r.from(tx).Select(assetColumns...).Where(goqu.Ex{"id": id})

	var asset models.Asset
	found, err := query.Executor().ScanStruct(&asset)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &asset, nil
}

// SerialExists reports whether any asset holds the given serial number. A
// non-zero excludeID leaves that asset out of the check, so an update does
// not collide with its own row.
func (r *AssetsRepository) SerialExists(tx *goqu.TxDatabase, serialNumber string, excludeID int64) (bool, error) {
	conditions := goqu.Ex{"serial_number": serialNumber}
	if excludeID != 0 {
		conditions["id"] = goqu.Op{"neq": excludeID}
	}

	var id int64
	found, err := r.from(tx).Select("id").Where(conditions).Limit(1).Executor().ScanVal(&id)
	if err != nil {
		return false, fmt.Errorf("unable to check serial number: %w", err)
	}

	return found, nil
}

func (r *AssetsRepository) InsertAsset(tx *goqu.TxDatabase, req models.AssetRequest) (*models.Asset, error) {
	query := tx.Insert(assetsTable).
		Rows(upsertRecord(req)).
		Returning(assetColumns...)

	var asset models.Asset
	if _, err := query.Executor().ScanStruct(&asset); err != nil {
		return nil, fmt.Errorf("failed to insert asset record: %w", apperrors.WrapDBError(err))
	}

	return &asset, nil
}

// UpdateAsset replaces all business fields of an asset and refreshes
// updated_at, returning nil when the row no longer exists.
func (r *AssetsRepository) UpdateAsset(tx *goqu.TxDatabase, id int64, req models.AssetRequest) (*models.Asset, error) {
	record := upsertRecord(req)
	record["updated_at"] = goqu.L("now()")

	query := tx.Update(assetsTable).
		Set(record).
		Where(goqu.Ex{"id": id}).
		Returning(assetColumns...)

	var asset models.Asset
	found, err := query.Executor().ScanStruct(&asset)
	if err != nil {
		return nil, fmt.Errorf("failed to update asset record: %w", apperrors.WrapDBError(err))
	}
	if !found {
		return nil, nil
	}

	return &asset, nil
}

// DeleteAsset removes one asset by id, reporting whether a row was deleted.
func (r *AssetsRepository) DeleteAsset(tx *goqu.TxDatabase, id int64) (bool, error) {
	result, err := tx.Delete(assetsTable).Where(goqu.Ex{"id": id}).Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to delete asset record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *AssetsRepository) CountAssets() (int64, error) {
	var count int64
	query := r.repository.GoquDBWrapper.From(assetsTable).Select(goqu.COUNT(goqu.Star()))
	if _, err := query.Executor().ScanVal(&count); err != nil {
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}

	return count, nil
}

func (r *AssetsRepository) insertBatch(tx *goqu.TxDatabase, records []goqu.Record) error {
	rows := make([]interface{}, len(records))
	for i, record := range records {
		rows[i] = record
	}

	if _, err := tx.Insert(assetsTable).Rows(rows...).Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert asset batch: %w", err)
	}

	return nil
}

func (r *AssetsRepository) from(tx *goqu.TxDatabase) *goqu.SelectDataset {
	if tx != nil {
		return tx.From(assetsTable)
	}
	return r.repository.GoquDBWrapper.From(assetsTable)
}

func upsertRecord(req models.AssetRequest) goqu.Record {
	return goqu.Record{
		"name":             req.Name,
		"serial_number":    req.SerialNumber,
		"category":         req.Category,
		"status":           req.Status,
		"acquisition_date": *req.AcquisitionDate,
	}
}

func (q *ListQuery) conditions() []exp.Expression {
	conditions := make([]exp.Expression, 0, 3)

	if q.Category != nil {
		conditions = append(conditions, goqu.Ex{"category": q.Category.String()})
	}
	if q.Status != nil {
		conditions = append(conditions, goqu.Ex{"status": q.Status.String()})
	}
	if q.Search != "" {
		pattern := "%" + escapeLike(q.Search) + "%"
		conditions = append(conditions, goqu.Or(
			goqu.I("name").ILike(pattern),
			goqu.I("serial_number").ILike(pattern),
		))
	}

	return conditions
}

func (q *ListQuery) orders() []exp.OrderedExpression {
	orders := make([]exp.OrderedExpression, 0, len(q.Sort))
	for _, sort := range q.Sort {
		column := goqu.I(sort.Column)
		if sort.Descending {
			orders = append(orders, column.Desc())
		} else {
			orders = append(orders, column.Asc())
		}
	}

	return orders
}
