package usecase

import (
	stderrors "errors"

	"github.com/incident-microservice/internal/divider"
	"github.com/incident-microservice/internal/pkg/errors"
)

// mapDividerError переводит ошибки валидации генератора дивизионов
// в AppError для HTTP-слоя
func mapDividerError(err error) error {
	var geomErr *divider.InvalidGeometryError
	if stderrors.As(err, &geomErr) {
		return errors.ErrInvalidSearchArea.WithDetails(map[string]interface{}{
			"reason": geomErr.Reason,
		})
	}

	var paramErr *divider.InvalidParameterError
	if stderrors.As(err, &paramErr) {
		return errors.ErrInvalidTargetArea.WithDetails(map[string]interface{}{
			"parameter": paramErr.Param,
			"reason":    paramErr.Reason,
		})
	}

	return err
}
