package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/validator"
)

const maxBodySize = 1 << 20

// DecodeJSON reads a JSON body into dst and validates its struct tags
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty request body", entity.ErrInvalidFormat)
		}
		return fmt.Errorf("%w: %w", entity.ErrInvalidFormat, err)
	}

	return validator.ValidateStruct(dst)
}
