// Package taxonomy implements the shared CRUD pipeline for the taxonomy-shaped
// CMS resources: categories, genres, countries, and permissions. The four
// resources differ only in table name, route segment, and default list order,
// so one repository/service/handler trio serves them all, parameterized by a
// Descriptor.
package taxonomy

// Descriptor identifies one taxonomy resource.
type Descriptor struct {
	// Resource is the route segment and message noun, e.g. "category".
	Resource string
	// Table is the backing table name, e.g. "categories".
	Table string
	// DefaultOrder is the ORDER BY applied when no sort is requested.
	// Qualified with the list query's base-table alias.
	DefaultOrder string
}

// The four taxonomy resources. Categories are curated by position; the
// others list newest first.
var (
	Category   = Descriptor{Resource: "category", Table: "categories", DefaultOrder: "t.position asc"}
	Genre      = Descriptor{Resource: "genre", Table: "genres", DefaultOrder: "t.id desc"}
	Country    = Descriptor{Resource: "country", Table: "countries", DefaultOrder: "t.id desc"}
	Permission = Descriptor{Resource: "permission", Table: "permissions", DefaultOrder: "t.id desc"}
)

// Tables lists every taxonomy table, for migration.
func Tables() []string {
	return []string{Category.Table, Genre.Table, Country.Table, Permission.Table}
}
