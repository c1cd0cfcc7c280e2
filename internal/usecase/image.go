package usecase

import (
	"context"
	"fmt"
)

// ApplyImageEffect runs the coded transform over encoded image bytes.
// Stateless: nothing is stored on either side of the transform.
func (u Usecase) ApplyImageEffect(ctx context.Context, code int64, img []byte) ([]byte, error) {
	out, err := u.imageProcessor.Apply(ctx, code, img)
	if err != nil {
		return nil, fmt.Errorf("apply effect %d: %w", code, err)
	}
	return out, nil
}
