package user

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/pkg"
)

// Allowed fields for sorting and direct lookups in list queries.
var (
	allowedSortFields   = []string{"id", "name", "email", "username", "status", "created_at", "updated_at"}
	allowedLookupFields = map[string]bool{"username": true, "email": true}
)

// userRepository implements domain.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewRepository creates a UserRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a user by its primary key.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &user, nil
}

// GetByField retrieves a user by an exact match on one credential field.
// Only username and email lookups are supported; this is what login and
// the uniqueness checks run against.
func (r *userRepository) GetByField(ctx context.Context, field, value string) (*domain.User, error) {
	if !allowedLookupFields[field] {
		return nil, domain.NewValidation("unsupported lookup field: " + field)
	}

	var user domain.User
	if err := r.db.WithContext(ctx).Where(field+" = ?", value).First(&user).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &user, nil
}

// userRow is the raw list projection scanned from the join query.
type userRow struct {
	ID        uint
	Name      string
	Email     string
	Username  string
	Phone     string
	Status    int
	RoleName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// List returns a paginated, sorted, and filtered page of user projections
// with the role id resolved to the role name. The title filter matches the
// display name.
func (r *userRepository) List(ctx context.Context, filter domain.ListFilter) (*domain.PageResult[domain.UserListItem], error) {
	base := r.db.WithContext(ctx).Table("users AS t").
		Joins("LEFT JOIN roles ro ON ro.id = t.role_id").
		Scopes(
			pkg.TitleLike("t.name", filter.Title),
			pkg.StatusEq("t.status", filter.Status),
		)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var rows []userRow
	err := base.
		Select("t.id, t.name, t.email, t.username, t.phone, t.status, t.created_at, t.updated_at, ro.name AS role_name").
		Scopes(
			pkg.SortBy(filter.Sort, allowedSortFields, "t.", "t.id desc"),
			pkg.Paginate(filter.Page, filter.PageSize),
		).
		Scan(&rows).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	items := make([]domain.UserListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.UserListItem{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Username:  row.Username,
			Phone:     row.Phone,
			Status:    row.Status,
			Role:      row.RoleName,
			CreatedAt: pkg.FormatTime(row.CreatedAt),
			UpdatedAt: pkg.FormatTime(row.UpdatedAt),
		})
	}

	return pkg.NewPageResult(items, total, filter), nil
}

// Update saves changes to an existing user.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a user by ID.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RoleExists reports whether the given role id resolves to a role row.
func (r *userRepository) RoleExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Role{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, pkg.MapDBError(err)
	}
	return count > 0, nil
}
