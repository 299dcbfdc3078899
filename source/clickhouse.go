package source

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/pivolan/go_utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrBadTableName  = errors.New("bad table name")
	tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)?$`)
)

// Connect opens the ClickHouse MySQL-protocol endpoint.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("connect to clickhouse: %w", err)
	}
	return db, nil
}

type ColumnInfo struct {
	Name string
	Type string
}

func IsNumericType(t string) bool {
	return go_utils.InArray(t, []string{
		"Int32", "Int64", "UInt32", "UInt64", "Float32", "Float64",
		"Nullable(Int64)", "Nullable(Float64)", "Nullable(Float32)",
	})
}

func isTimeType(t string) bool {
	return strings.Contains(t, "Date")
}

// DescribeColumns lists the columns of table and maps their database types
// onto value types.
func DescribeColumns(db *gorm.DB, table string) ([]models.Column, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrBadTableName, table)
	}
	var info []ColumnInfo
	if err := db.Raw("DESCRIBE TABLE " + table).Scan(&info).Error; err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	columns := make([]models.Column, 0, len(info))
	for _, ci := range info {
		c := models.Column{Key: ci.Name, Label: ci.Name, Type: models.TypeString}
		switch {
		case IsNumericType(ci.Type):
			c.Type = models.TypeNumber
		case isTimeType(ci.Type):
			c.Type = models.TypeTimestamp
		}
		if declared, ok := argoColumn(ci.Name); ok {
			c = declared
		}
		columns = append(columns, c)
	}
	return columns, nil
}

func argoColumn(key string) (models.Column, bool) {
	for _, c := range models.ArgoColumns() {
		if c.Key == key {
			return c, true
		}
	}
	return models.Column{}, false
}

func selectQuery(table string, columns []models.Column, limit int) string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = "`" + strings.ReplaceAll(c.Key, "`", "") + "`"
	}
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), table)
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}
	return q
}

// LoadTable selects the declared columns of table. With no columns the
// table is described first. Row numbers become record ids.
func LoadTable(db *gorm.DB, table string, columns []models.Column, limit int) (*models.Dataset, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrBadTableName, table)
	}
	if len(columns) == 0 {
		described, err := DescribeColumns(db, table)
		if err != nil {
			return nil, err
		}
		columns = described
	}

	rows, err := db.Raw(selectQuery(table, columns, limit)).Rows()
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	defer rows.Close()

	cells := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range cells {
		dest[i] = &cells[i]
	}
	var records []models.Record
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		values := make(map[string]models.Value, len(columns))
		for i, c := range columns {
			values[c.Key] = models.ParseValue(c.Type, cells[i].String)
		}
		id := models.RecordID(fmt.Sprintf("%d", len(records)+1))
		records = append(records, models.NewRecord(id, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return models.NewDataset(table, columns, records), nil
}
