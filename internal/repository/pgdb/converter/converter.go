//go:generate goverter gen github.com/DRSN-tech/pharmacrawl/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DRSN-tech/pharmacrawl/internal/domain"
)

// MedicineConverter преобразует сущности Medicine между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertNullDecimal
type MedicineConverter interface {
	ToModel(entity *domain.Medicine) *MedicineModel
	ToEntity(model *MedicineModel) *domain.Medicine
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertNullDecimal(d decimal.NullDecimal) decimal.NullDecimal {
	return d
}
