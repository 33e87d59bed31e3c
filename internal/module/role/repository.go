package role

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/pkg"
)

// Allowed fields for sorting in List queries.
var allowedSortFields = []string{"id", "name", "status", "created_at", "updated_at"}

// roleRepository implements domain.RoleRepository using GORM. Permission
// attachments live in the role_permissions join table and are written in the
// same transaction as the role row.
type roleRepository struct {
	db *gorm.DB
}

// NewRepository creates a RoleRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.RoleRepository {
	return &roleRepository{db: db}
}

// Create inserts a new role and its permission attachments.
func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		return replacePermissions(tx, role.ID, role.PermissionIDs)
	})
	return pkg.MapDBError(err)
}

// GetByID retrieves a role and its attached permission ids.
func (r *roleRepository) GetByID(ctx context.Context, id uint) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	if err := r.loadPermissionIDs(ctx, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByName retrieves a role by its exact name, for uniqueness checks.
func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &role, nil
}

// roleRow is the raw list projection scanned from the join query.
type roleRow struct {
	ID              uint
	Name            string
	Status          int
	PermissionCount int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedByName   string
	UpdatedByName   string
}

// List returns a paginated, sorted, and filtered page of role projections.
// The title filter matches the role name.
func (r *roleRepository) List(ctx context.Context, filter domain.ListFilter) (*domain.PageResult[domain.RoleListItem], error) {
	base := r.db.WithContext(ctx).Table("roles AS t").
		Joins("LEFT JOIN users cu ON cu.id = t.created_by").
		Joins("LEFT JOIN users uu ON uu.id = t.updated_by").
		Scopes(
			pkg.TitleLike("t.name", filter.Title),
			pkg.StatusEq("t.status", filter.Status),
		)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var rows []roleRow
	err := base.
		Select("t.id, t.name, t.status, t.created_at, t.updated_at, cu.name AS created_by_name, uu.name AS updated_by_name, (SELECT COUNT(*) FROM role_permissions rp WHERE rp.role_id = t.id) AS permission_count").
		Scopes(
			pkg.SortBy(filter.Sort, allowedSortFields, "t.", "t.id desc"),
			pkg.Paginate(filter.Page, filter.PageSize),
		).
		Scan(&rows).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	items := make([]domain.RoleListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.RoleListItem{
			ID:              row.ID,
			Name:            row.Name,
			Status:          row.Status,
			PermissionCount: row.PermissionCount,
			CreatedAt:       pkg.FormatTime(row.CreatedAt),
			UpdatedAt:       pkg.FormatTime(row.UpdatedAt),
			CreatedBy:       row.CreatedByName,
			UpdatedBy:       row.UpdatedByName,
		})
	}

	return pkg.NewPageResult(items, total, filter), nil
}

// Select returns the active roles as dropdown items. Roles carry no slug.
func (r *roleRepository) Select(ctx context.Context) ([]domain.SelectItem, error) {
	var items []domain.SelectItem
	err := r.db.WithContext(ctx).Table("roles").
		Select("id, name AS title, '' AS slug").
		Where("status = ?", 1).
		Order("id asc").
		Scan(&items).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	if items == nil {
		items = []domain.SelectItem{}
	}
	return items, nil
}

// Update saves changes to an existing role and replaces its permission attachments.
func (r *roleRepository) Update(ctx context.Context, role *domain.Role) error {
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Save(role).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", role.ID).Delete(&domain.RolePermission{}).Error; err != nil {
			return err
		}
		return replacePermissions(tx, role.ID, role.PermissionIDs)
	})
	return pkg.MapDBError(err)
}

// Delete removes a role and its permission attachments.
func (r *roleRepository) Delete(ctx context.Context, id uint) error {
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&domain.RolePermission{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Role{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.ErrNotFound
		}
		return pkg.MapDBError(err)
	}
	return nil
}

// PermissionsExist reports whether every id resolves to a permission row.
func (r *roleRepository) PermissionsExist(ctx context.Context, ids []uint) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Table("permissions").
		Where("id IN ?", ids).
		Count(&count).Error
	if err != nil {
		return false, pkg.MapDBError(err)
	}
	return count == int64(len(ids)), nil
}

// loadPermissionIDs fills role.PermissionIDs from the join table.
func (r *roleRepository) loadPermissionIDs(ctx context.Context, role *domain.Role) error {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.RolePermission{}).
		Where("role_id = ?", role.ID).
		Order("permission_id asc").
		Pluck("permission_id", &ids).Error
	if err != nil {
		return pkg.MapDBError(err)
	}
	if ids == nil {
		ids = []uint{}
	}
	role.PermissionIDs = ids
	return nil
}

// replacePermissions inserts join rows for the given permission ids.
func replacePermissions(tx *gorm.DB, roleID uint, permissionIDs []uint) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	rows := make([]domain.RolePermission, 0, len(permissionIDs))
	for _, pid := range permissionIDs {
		rows = append(rows, domain.RolePermission{RoleID: roleID, PermissionID: pid})
	}
	return tx.Create(&rows).Error
}
